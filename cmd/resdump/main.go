package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/gameres/codec"
	"github.com/wippyai/gameres/config"
	"github.com/wippyai/gameres/crc"
	"github.com/wippyai/gameres/layout"
	"github.com/wippyai/gameres/resource"
	"github.com/wippyai/gameres/schema"
)

type options struct {
	file        string
	configPath  string
	typ         string
	game        string
	structName  string
	hash        string
	id          uint64
	width       int
	list        bool
	interactive bool
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "", "Path to resource file")
	flag.StringVar(&opts.configPath, "config", "", "YAML config file")
	flag.StringVar(&opts.typ, "type", "", "Resource type name or tag")
	flag.Uint64Var(&opts.id, "id", 0, "Resource id")
	flag.IntVar(&opts.width, "width", 0, "Address width in bits (32 or 64)")
	flag.StringVar(&opts.game, "game", "", "Format generation (gen1, gen2, gen3)")
	flag.StringVar(&opts.structName, "struct", "", "Decode the body start as this struct (registered name, Bone, MeshPart or Skeleton)")
	flag.StringVar(&opts.hash, "hash", "", "Print CRC name tokens for comma-separated names")
	flag.BoolVar(&opts.list, "list", false, "List registered structs and exit")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive mode with TUI")
	flag.Parse()

	if opts.file == "" && opts.hash == "" && !opts.list {
		fmt.Fprintln(os.Stderr, "Usage: resdump -file <resource> [-width 32|64] [-type model] [-id N] [-struct name] [-game gen3]")
		fmt.Fprintln(os.Stderr, "       resdump -hash name[,name...]")
		fmt.Fprintln(os.Stderr, "       resdump -list")
		fmt.Fprintln(os.Stderr, "       resdump -file <resource> -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// settings merges the config file, if any, with flags.
func settings(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}
	if opts.width != 0 {
		cfg.Width = opts.width
	}
	if opts.typ != "" {
		cfg.Type = opts.typ
	}
	if opts.game != "" {
		cfg.Game = opts.game
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(opts options, out io.Writer) error {
	cfg, err := settings(opts)
	if err != nil {
		return err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	codec.SetLogger(logger.Named("codec"))
	layout.SetLogger(logger.Named("layout"))

	names := cfg.Hashes
	if opts.hash != "" {
		names = append(names, strings.Split(opts.hash, ",")...)
	}
	if len(names) > 0 {
		printHashes(out, names)
	}
	if opts.list {
		printRegistered(out)
	}
	if opts.file == "" {
		return nil
	}

	width, _ := cfg.AddressWidth()
	typ, _ := cfg.ResourceType()
	game, _ := cfg.Generation()
	key := resource.NewKey(typ, opts.id)

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	logger.Debug("resource loaded", zap.String("file", opts.file), zap.Int("bytes", len(data)))

	if opts.interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(opts.file, data, key, width)
	}

	r, err := codec.NewReader(data, key, width)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	printSummary(out, opts.file, r)

	if opts.structName != "" {
		return printStruct(out, r, opts.structName, game)
	}
	return nil
}

func printHashes(out io.Writer, names []string) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", crc.Name(name), name)
	}
}

func printRegistered(out io.Writer) {
	fmt.Fprintf(out, "%-20s %8s %8s  %s\n", "STRUCT", "32-BIT", "64-BIT", "FLAGS")
	for _, d := range layout.Registered() {
		var flags []string
		for _, f := range d.Flags() {
			flags = append(flags, fmt.Sprintf("%s=%s.%d", f.Name, f.Field, f.Bit))
		}
		fmt.Fprintf(out, "%-20s %#8x %#8x  %s\n", d.Name(), d.Size(resource.Width32), d.Size(resource.Width64), strings.Join(flags, " "))
	}
}

func printSummary(out io.Writer, file string, r *codec.Reader) {
	fmt.Fprintf(out, "Resource: %s (%s, %s)\n", file, r.Key(), r.Width())
	fmt.Fprintf(out, "Size: %d bytes, body at %#x (%d bytes)\n", r.Len(), r.BodyStart(), r.Len()-r.BodyStart())

	refs := r.References().Entries()
	fmt.Fprintf(out, "References: %d\n", len(refs))
	for _, e := range refs {
		fmt.Fprintf(out, "  %#08x  %s\n", e.Site-r.BodyStart(), e.Key)
	}
}

// resolveStruct maps a struct name to a descriptor. Role names with
// per-generation variants are resolved through game.
func resolveStruct(name string, game schema.Game) (*layout.Descriptor, error) {
	switch strings.ToLower(name) {
	case "bone":
		return schema.Bones.Select(game)
	case "meshpart":
		return schema.MeshParts.Select(game)
	}
	d, ok := layout.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown struct %q (see -list)", name)
	}
	return d, nil
}

func printStruct(out io.Writer, r *codec.Reader, name string, game schema.Game) error {
	if strings.EqualFold(name, "skeleton") {
		var s schema.Skeleton
		if err := s.DecodeBody(r); err != nil {
			return fmt.Errorf("decode skeleton: %w", err)
		}
		fmt.Fprintf(out, "\nSkeleton (%s, %d bones, root %d)\n", s.Game, len(s.Bones), s.Root())
		for i, b := range s.Bones {
			fmt.Fprintf(out, "\n[%d] %s\n", i, b.Descriptor().Name())
			printFields(out, b.Descriptor(), r.Width(), b)
		}
		return nil
	}

	desc, err := resolveStruct(name, game)
	if err != nil {
		return err
	}
	v := desc.New()
	if err := r.ReadStruct(desc, v); err != nil {
		return fmt.Errorf("decode %s: %w", desc.Name(), err)
	}
	fmt.Fprintf(out, "\n%s (%#x bytes)\n", desc.Name(), desc.Size(r.Width()))
	printFields(out, desc, r.Width(), v)
	return nil
}

func printFields(out io.Writer, desc *layout.Descriptor, w resource.Width, v any) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	for _, s := range desc.Layout(w).Slots {
		if s.Kind == layout.KindPad {
			continue
		}
		fmt.Fprintf(out, "  %#06x  %-14s %-6s %v\n", s.Offset, s.Name, s.Kind, rv.FieldByIndex(s.Index).Interface())
	}
	for _, f := range desc.Flags() {
		on, err := desc.Flag(v, f.Name)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "          %-14s flag   %t\n", f.Name, on)
	}
}
