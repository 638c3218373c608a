package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/snapimage/internal/config"
	"github.com/imamik/snapimage/internal/module"
)

// ErrModuleFailed is returned after a failure document has been written.
var ErrModuleFailed = errors.New("module failed")

// Module handles the module command.
//
// Exactly one JSON document is written to stdout, whatever happens. Argument
// credentials take precedence over the persistent flags.
func Module(ctx context.Context, g GlobalOptions, argsPath string) error {
	args, err := module.LoadArgs(argsPath)
	if err != nil {
		return writeModule(module.FailResponse(err))
	}

	src := g.credentialSource()
	src = config.CredentialSource{
		Token:    firstNonEmpty(args.APIToken, src.Token),
		File:     firstNonEmpty(args.Credentials, src.File),
		Endpoint: firstNonEmpty(args.Endpoint, src.Endpoint),
	}

	if _, err := args.ToRequest(); err != nil {
		return writeModule(module.FailResponse(err))
	}

	s, err := openSession(g, src)
	if err != nil {
		return writeModule(module.FailResponse(err))
	}
	defer s.close()

	resp := module.Execute(ctx, s.reconciler, args)
	if resp.Failed {
		s.log.Info("Module failed", "msg", resp.Msg)
	}
	return writeModule(resp)
}

func writeModule(resp module.Response) error {
	if err := resp.Write(stdout); err != nil {
		return fmt.Errorf("failed to write module result: %w", err)
	}
	if resp.Failed {
		return fmt.Errorf("%w: %s", ErrModuleFailed, resp.Msg)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
