// Command scriptcheck decodes a hex-encoded script from the command line,
// evaluates it, and prints the verdict. It exists purely as a driver around
// the txscript package; none of the consensus logic lives here.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/btcscriptvm/core/logging"
	"github.com/btcscriptvm/core/scriptcache"
	"github.com/btcscriptvm/core/txscript"
)

func main() {
	var (
		disasm     = flag.Bool("disasm", false, "print the disassembly instead of evaluating")
		standard   = flag.Bool("standard", true, "apply the standard strictness flags")
		cacheDir   = flag.String("cache", "", "path to a script verdict cache directory")
		permissive = flag.Bool("permissive", false, "treat signature/locktime opcodes as always succeeding")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: scriptcheck [flags] <hex-script>")
		os.Exit(2)
	}

	raw, err := hex.DecodeString(flag.Arg(0))
	if err != nil {
		logging.CPrint(logging.ErrorLevel, "invalid hex input", logging.LogFormat{"err": err})
		os.Exit(1)
	}

	if *disasm {
		out, err := txscript.DisasmString(raw)
		if err != nil {
			logging.CPrint(logging.ErrorLevel, "disassembly failed", logging.LogFormat{"err": err})
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}

	var flags txscript.ScriptFlags
	if *standard {
		flags = txscript.StandardFlags
	}

	var ctx txscript.VerificationContext = txscript.NopVerificationContext{}
	if *permissive {
		ctx = txscript.PermissiveVerificationContext{}
	}

	var cache *scriptcache.Cache
	if *cacheDir != "" {
		cache, err = scriptcache.Open(*cacheDir)
		if err != nil {
			logging.CPrint(logging.ErrorLevel, "opening script cache", logging.LogFormat{"err": err})
			os.Exit(1)
		}
		defer cache.Close()

		if valid, found, err := cache.Lookup(raw, uint32(flags)); err == nil && found {
			printVerdict(valid, nil)
			return
		}
	}

	valid, err := txscript.Interpret(raw, flags, ctx)
	if cache != nil {
		if cerr := cache.Store(raw, uint32(flags), valid); cerr != nil {
			logging.CPrint(logging.WarnLevel, "failed to persist script cache entry", logging.LogFormat{"err": cerr})
		}
	}

	printVerdict(valid, err)
}

func printVerdict(valid bool, err error) {
	if err != nil {
		var scriptErr *txscript.ScriptError
		if se, ok := err.(*txscript.ScriptError); ok {
			scriptErr = se
		}
		if scriptErr != nil {
			fmt.Printf("INVALID: %s: %s\n", scriptErr.Code(), scriptErr.Error())
		} else {
			fmt.Printf("INVALID: %s\n", err)
		}
		os.Exit(1)
	}
	if valid {
		fmt.Println("VALID")
		return
	}
	fmt.Println("INVALID")
	os.Exit(1)
}
