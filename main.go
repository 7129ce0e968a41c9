package main

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/clipplanes/pkg/texture"
	"github.com/chazu/clipplanes/pkg/texture/gpu"
	"github.com/chazu/clipplanes/pkg/texture/memory"
	"github.com/segmentio/encoding/json"
)

// The clipplanes version number. Set at build.
var version = "v0.1.0"

// Keeps the config keys readable by the cli package when obfuscated.
var _ = reflect.TypeOf(config{})

type config struct {
	Input     string `cli:""        env:"CLIPPLANES_INPUT"      help:"Clip set to inspect (.clip script or .yaml document)."`
	Output    string `cli:""        env:"CLIPPLANES_OUTPUT"     help:"File the JSON report is written to. Defaults to stdout."`
	Dump      string `cli:""        env:"CLIPPLANES_DUMP"       help:"File the zstd-compressed packed plane buffer is written to."`
	GPU       bool   `cli:""        env:"CLIPPLANES_GPU"        help:"Pack planes into a WebGPU texture instead of memory."`
	Indent    bool   `cli:""        env:"CLIPPLANES_INDENT"     help:"Indent the JSON report."`
	LogLevel  string `cli:""        env:"CLIPPLANES_LOG_LEVEL"  help:"Log level (debug|info|warning|error)."`
	LogIndent bool   `cli:""        env:"CLIPPLANES_LOG_INDENT" help:"Indent logs."`
	Version   bool   `cli:""        env:"-"                     help:"Show version."`
	Help      bool   `cli:""        env:"-"                     help:"Show help."`
}

func main() {
	conf := config{
		LogLevel: logs.InfoLevel.String(),
	}

	cli.Register().
		Help("Packs a clip set into its plane texture and classifies its volumes.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := run(conf, os.Stdout); err != nil {
		logs.Fatal(err)
	}
}

func run(conf config, stdout io.Writer) error {
	if conf.Input == "" {
		return errors.New("no input given: use -input")
	}

	source, err := os.ReadFile(conf.Input)
	if err != nil {
		return errors.New("reading input failed").WithTag("path", conf.Input).Wrap(err)
	}

	dev, err := device(conf)
	if err != nil {
		return err
	}

	report := NewAppWithDevice(dev).Inspect(conf.Input, source)

	var out []byte
	if conf.Indent {
		out, err = json.MarshalIndent(report, "", "  ")
	} else {
		out, err = json.Marshal(report)
	}
	if err != nil {
		return errors.New("encoding report failed").Wrap(err)
	}
	out = append(out, '\n')

	if conf.Output == "" {
		if _, err := stdout.Write(out); err != nil {
			return errors.New("writing report failed").Wrap(err)
		}
	} else if err := os.WriteFile(conf.Output, out, 0o644); err != nil {
		return errors.New("writing report failed").WithTag("path", conf.Output).Wrap(err)
	}

	if len(report.Errors) > 0 {
		return errors.Newf("clip set has %d errors", len(report.Errors)).
			WithTag("first", report.Errors[0].Message)
	}

	if conf.Dump != "" {
		if err := writeDump(conf.Dump, report); err != nil {
			return err
		}
		logs.WithTag("path", conf.Dump).
			WithTag("bytes", len(report.Packed)).
			Info("packed planes dumped")
	}
	return nil
}

func device(conf config) (texture.Device, error) {
	if !conf.GPU {
		return memory.New(), nil
	}
	dev, err := gpu.New()
	if err != nil {
		return nil, errors.New("opening gpu device failed").Wrap(err)
	}
	return dev, nil
}
