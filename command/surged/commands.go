// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	jsoniter "github.com/json-iterator/go"

	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/ledger"
	"github.com/bitmark-inc/surged/merkle"
	"github.com/bitmark-inc/surged/record"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// setup command handler
//
// commands that need neither the configuration file nor the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "genesis", "init", "check", "c", "apply", "a", "objects", "o", "stats", "s":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] [--define=KEY=VALUE...] --config-file=FILE command arguments...\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  genesis                    (init)   - create the bootstrap tokens of an empty ledger\n")
		fmt.Printf("                                        using the genesis section of the configuration\n")
		fmt.Printf("\n")

		fmt.Printf("  check TRANSITION FILE      (c)      - run the checker on a transaction JSON file\n")
		fmt.Printf("\n")

		fmt.Printf("  apply TRANSITION FILE      (a)      - check a transaction and apply it to the ledger\n")
		fmt.Printf("\n")

		fmt.Printf("  objects LOCATION TYPE      (o)      - list unspent objects of a type at a location\n")
		fmt.Printf("\n")

		fmt.Printf("  stats                      (s)      - display accepted and rejected counts\n")
		fmt.Printf("\n")

		fmt.Printf("transitions:\n\n")
		for _, name := range checker.Names() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Printf("\n")

		if "help" != command && "h" != command && "?" != command {
			exitwithstatus.Exit(1)
		}
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		if err := printJson(os.Stdout, options); nil != err {
			exitwithstatus.Message("error: %s", err)
		}

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// commands that never change the database
func isReadOnlyCommand(arguments []string) bool {
	if 0 == len(arguments) {
		return false
	}
	switch arguments[0] {
	case "check", "c", "objects", "o", "stats", "s":
		return true
	}
	return false
}

// data command handler
//
// storage and ledger are initialised so these commands can access
// and/or change the ledger; returns false if the command failed
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "genesis", "init":
		id, err := ledger.Genesis(options.Genesis.Shards, options.Genesis.Clients)
		if nil != err {
			log.Errorf("genesis error: %s", err)
			fmt.Fprintf(os.Stderr, "genesis error: %s\n", err)
			return false
		}
		fmt.Printf("genesis: %s  shards: %d  clients: %d\n", id, options.Genesis.Shards, options.Genesis.Clients)

	case "check", "c":
		name, tx, err := transactionArguments(arguments)
		if nil != err {
			exitwithstatus.Message("check: %s", err)
		}
		err = ledger.Check(name, tx)
		return report(os.Stdout, "check", name, merkle.Digest{}, err)

	case "apply", "a":
		name, tx, err := transactionArguments(arguments)
		if nil != err {
			exitwithstatus.Message("apply: %s", err)
		}
		id, err := ledger.Apply(name, tx)
		return report(os.Stdout, "apply", name, id, err)

	case "objects", "o":
		if len(arguments) < 2 {
			exitwithstatus.Message("objects: missing LOCATION TYPE arguments")
		}
		location, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("objects: location: %q error: %s", arguments[0], err)
		}
		list, err := listObjects(location, record.TypeName(arguments[1]))
		if nil != err {
			fmt.Fprintf(os.Stderr, "objects error: %s\n", err)
			return false
		}
		if err := printJson(os.Stdout, list); nil != err {
			exitwithstatus.Message("objects: %s", err)
		}

	case "stats", "s":
		if err := printJson(os.Stdout, ledger.Stats()); nil != err {
			exitwithstatus.Message("stats: %s", err)
		}

	default:
		exitwithstatus.Message("error: no such command: %q", command)
	}

	return true
}

// TRANSITION FILE
func transactionArguments(arguments []string) (string, *checker.Transaction, error) {
	if len(arguments) < 2 {
		return "", nil, fmt.Errorf("missing TRANSITION FILE arguments")
	}
	name := arguments[0]
	if _, ok := checker.Lookup(name); !ok {
		return "", nil, fault.ErrUnknownTransition
	}
	tx, err := readTransaction(arguments[1])
	if nil != err {
		return "", nil, err
	}
	return name, tx, nil
}

func readTransaction(fileName string) (*checker.Transaction, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	tx := &checker.Transaction{}
	if err := json.Unmarshal(data, tx); nil != err {
		return nil, err
	}
	return tx, nil
}

type verdictReply struct {
	Transition string         `json:"transition"`
	ID         *merkle.Digest `json:"id,omitempty"`
	Accepted   bool           `json:"accepted"`
	Kind       string         `json:"kind,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// print a verdict, returning true if accepted
func report(handle io.Writer, command string, name string, id merkle.Digest, err error) bool {
	reply := verdictReply{
		Transition: name,
		Accepted:   nil == err,
	}
	if (merkle.Digest{}) != id {
		reply.ID = &id
	}
	if nil != err {
		reply.Kind = fault.Kind(err)
		reply.Error = err.Error()
	}
	if e := printJson(handle, reply); nil != e {
		exitwithstatus.Message("%s: %s", command, e)
	}
	return reply.Accepted
}

type objectReply struct {
	ID     merkle.Digest   `json:"id"`
	Type   record.TypeName `json:"type"`
	Count  uint64          `json:"count"`
	Object record.Object   `json:"object"`
	Packed record.Packed   `json:"packed"`
}

// unspent objects with their copy counts
func listObjects(location uint64, objectType record.TypeName) ([]objectReply, error) {
	if nil == record.RequiredFields(objectType) {
		return nil, fault.ErrUnknownObjectType
	}
	packed, err := ledger.GetObjects(location, objectType)
	if nil != err {
		return nil, err
	}

	list := []objectReply{}
	seen := make(map[merkle.Digest]struct{})
	for _, p := range packed {
		id := ledger.ObjectID(p)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		o, err := p.Unpack()
		if nil != err {
			return nil, err
		}
		_, count := ledger.GetObject(id)
		list = append(list, objectReply{ID: id, Type: o.Type(), Count: count, Object: o, Packed: p})
	}
	return list, nil
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
