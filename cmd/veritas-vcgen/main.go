// Command veritas-vcgen is the smoke-test driver for the verification core:
// it decodes a compiled IR file, verifies every function/method case
// against the Arithmetic reference transformer and a Z3-backed solver, and
// reports each obligation's verdict. It exercises the library, the way
// cmd/orizon-smoke-test exercises the teacher's formatter and LSP server; it
// is not itself part of the verification core.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/veritas-lang/veritas/internal/vccodec"
	"github.com/veritas-lang/veritas/internal/vcconfig"
	"github.com/veritas-lang/veritas/internal/vcengine"
	"github.com/veritas-lang/veritas/internal/vcsolver"
	"github.com/veritas-lang/veritas/internal/vctransform"
)

func main() {
	var (
		versions  = flag.String("accept-versions", "", "semver constraint the codec accepts for the file's format version, e.g. \">=1.0, <2.0\"")
		watch     = flag.Bool("watch", false, "recorded in the config as WatchEnabled; this command starts no watch")
		batchSize = flag.Int("obligation-batch-size", 0, "recorded in the config as ObligationBatchSize; obligations are always checked one at a time")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: veritas-vcgen [flags] <file.wyilbin>")
	}

	opts := []vcconfig.Option{vcconfig.WithWatchEnabled(*watch), vcconfig.WithObligationBatchSize(*batchSize)}
	if *versions != "" {
		opts = append(opts, vcconfig.WithAcceptedVersions(*versions))
	}

	cfg := vcconfig.New(opts...)

	if err := run(cfg, flag.Arg(0)); err != nil {
		log.Fatalf("veritas-vcgen: %v", err)
	}
}

func run(cfg vcconfig.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	codec := vccodec.NewCodec()

	if cfg.AcceptedVersions != "" {
		if err := codec.AcceptVersions(cfg.AcceptedVersions); err != nil {
			return err
		}
	}

	file, err := codec.Decode(data)
	if err != nil {
		return err
	}

	newSession := func() (vcengine.Transformer, vcsolver.Solver) {
		solver := vcsolver.NewZ3Solver()

		return vctransform.New(solver), solver
	}

	obligations, err := vcengine.VerifyAll(context.Background(), file, newSession)
	if err != nil {
		return err
	}

	log.Printf("%s: %d case(s) verified, %d obligation(s) raised", path, len(file.Declarations()), len(obligations))

	failed := 0

	for _, o := range obligations {
		log.Printf("  %s#%d branch=%d pc=%d: %s", o.DeclName, o.CaseIndex, o.Branch, o.PC, o.Verdict)

		if o.Verdict == vcengine.VerdictViolated {
			failed++
		}
	}

	if failed > 0 {
		return errVerificationFailed(failed)
	}

	return nil
}

type verificationFailedError struct{ count int }

func (e *verificationFailedError) Error() string {
	return "verification failed: " + strconv.Itoa(e.count) + " obligation(s) violated"
}

func errVerificationFailed(count int) error { return &verificationFailedError{count: count} }
