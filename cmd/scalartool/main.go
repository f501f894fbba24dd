// scalartool manipulates scalars modulo the curve9767 group order from
// the command line. Values are read and written as lowercase hex of the
// 32-byte little-endian canonical encoding; the reduce and hash
// commands accept hex input of any length.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/curve9767/go-curve9767/scalar"
)

var (
	domainFlag = &cli.StringFlag{
		Name:  "domain",
		Usage: "domain separation tag for hash-to-scalar",
		Value: "scalartool",
	}

	reduceCommand = &cli.Command{
		Action:    reduce,
		Name:      "reduce",
		Usage:     "reduce an arbitrary-length little-endian hex value modulo the group order",
		ArgsUsage: "<hex>",
	}
	checkCommand = &cli.Command{
		Action:    check,
		Name:      "check",
		Usage:     "verify that a hex value is a canonical scalar encoding",
		ArgsUsage: "<hex>",
	}
	addCommand = &cli.Command{
		Action:    binop,
		Name:      "add",
		Usage:     "add two canonical scalars",
		ArgsUsage: "<hexA> <hexB>",
	}
	subCommand = &cli.Command{
		Action:    binop,
		Name:      "sub",
		Usage:     "subtract two canonical scalars",
		ArgsUsage: "<hexA> <hexB>",
	}
	mulCommand = &cli.Command{
		Action:    binop,
		Name:      "mul",
		Usage:     "multiply two canonical scalars",
		ArgsUsage: "<hexA> <hexB>",
	}
	hashCommand = &cli.Command{
		Action:    hash,
		Name:      "hash",
		Usage:     "hash the concatenated hex arguments to a scalar",
		ArgsUsage: "<hex>...",
		Flags: []cli.Flag{
			domainFlag,
		},
	}
)

var app = &cli.App{
	Name:  "scalartool",
	Usage: "arithmetic on scalars modulo the curve9767 group order",
	Commands: []*cli.Command{
		reduceCommand,
		checkCommand,
		addCommand,
		subCommand,
		mulCommand,
		hashCommand,
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func argBytes(ctx *cli.Context, i int) ([]byte, error) {
	raw := ctx.Args().Get(i)
	if raw == "" {
		return nil, fmt.Errorf("missing argument %d", i+1)
	}
	buf, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("argument %d: %v", i+1, err)
	}
	return buf, nil
}

func argScalar(ctx *cli.Context, i int) (scalar.Scalar, error) {
	var s scalar.Scalar
	buf, err := argBytes(ctx, i)
	if err != nil {
		return s, err
	}
	if !s.DecodeStrict(buf) {
		return s, fmt.Errorf("argument %d: not a canonical scalar encoding", i+1)
	}
	return s, nil
}

func reduce(ctx *cli.Context) error {
	buf, err := argBytes(ctx, 0)
	if err != nil {
		return err
	}
	var s scalar.Scalar
	s.DecodeReduce(buf)
	fmt.Println(s.String())
	return nil
}

func check(ctx *cli.Context) error {
	buf, err := argBytes(ctx, 0)
	if err != nil {
		return err
	}
	var s scalar.Scalar
	if !s.DecodeStrict(buf) {
		return cli.Exit(fmt.Sprintf("not canonical (reduces to %s)", s.String()), 1)
	}
	fmt.Println(s.String())
	return nil
}

func binop(ctx *cli.Context) error {
	a, err := argScalar(ctx, 0)
	if err != nil {
		return err
	}
	b, err := argScalar(ctx, 1)
	if err != nil {
		return err
	}
	var r scalar.Scalar
	switch ctx.Command.Name {
	case "add":
		r.Add(&a, &b)
	case "sub":
		r.Sub(&a, &b)
	case "mul":
		r.Mul(&a, &b)
	}
	fmt.Println(r.String())
	return nil
}

func hash(ctx *cli.Context) error {
	var data [][]byte
	for i := 0; i < ctx.Args().Len(); i++ {
		buf, err := argBytes(ctx, i)
		if err != nil {
			return err
		}
		data = append(data, buf)
	}
	s := scalar.HashToScalar(ctx.String(domainFlag.Name), data...)
	fmt.Println(s.String())
	return nil
}
