// Package logging wires go.uber.org/zap, k8s.io/klog/v2 and
// sigs.k8s.io/controller-runtime/pkg/log into the single logr.Logger
// every internal package accepts, exactly the way
// cmd/topolvm-controller/app/root.go and pkg/topolvm-node/cmd/root.go
// set theirs up.
package logging

import (
	"context"
	"flag"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
	"sigs.k8s.io/controller-runtime/pkg/log"
	crzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Options re-exports the controller-runtime zap Options type so callers
// building a cobra command don't need to import that package directly.
type Options = crzap.Options

// BindFlags registers the zap flags and klog's legacy flag.FlagSet into
// fs, sharing one set of logging flags across storagecorectl the same
// way root.go merges klog's flag.FlagSet into its cobra pflag.FlagSet.
func BindFlags(opts *Options, fs *pflag.FlagSet) {
	goflags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(goflags)
	opts.BindFlags(goflags)
	fs.AddGoFlagSet(goflags)
}

// New builds the shared logr.Logger from zap Options, bridging it into
// klog so klog-based dependencies (client-go-style libraries, if any
// are ever linked in) share the same sink.
func New(opts Options) logr.Logger {
	logger := crzap.New(crzap.UseFlagOptions(&opts))
	klog.SetLogger(logger)
	return logger
}

// IntoContext and FromContext re-export controller-runtime's log
// helpers, the same functions lvmd/command/lvm_command.go calls around
// every external command invocation.
func IntoContext(ctx context.Context, logger logr.Logger) context.Context {
	return log.IntoContext(ctx, logger)
}

func FromContext(ctx context.Context, keysAndValues ...interface{}) logr.Logger {
	return log.FromContext(ctx, keysAndValues...)
}
