// Command canopy is a thin driver around the canopy library:
// it builds a tree from command-line elements,
// prints roots and inclusion proofs,
// and checks a proof against a root.
package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/canopy-works/canopy"
	"github.com/canopy-works/canopy/chash/csha256"
)

func main() {
	app := &cli.App{
		Name:  "canopy",
		Usage: "build Merkle trees and check inclusion proofs (SHA256)",
		Commands: []*cli.Command{
			{
				Name:      "root",
				Usage:     "print the root committing to the given elements",
				ArgsUsage: "ELEMENT...",
				Action:    runRoot,
			},
			{
				Name:      "prove",
				Usage:     "print the inclusion proof for one element",
				ArgsUsage: "ELEMENT...",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "index",
						Usage: "position of the element to prove",
					},
				},
				Action: runProve,
			},
			{
				Name:      "verify",
				Usage:     "check an element's proof against a root",
				ArgsUsage: "ELEMENT",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "root",
						Usage:    "hex root digest to check against",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "step",
						Usage: "proof step as SIDE:HEXDIGEST, repeated leaf to root",
					},
				},
				Action: runVerify,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildTree(c *cli.Context) (*canopy.Tree, error) {
	elements := make([][]byte, c.NArg())
	for i := range elements {
		elements[i] = []byte(c.Args().Get(i))
	}

	return canopy.NewTree(elements, canopy.TreeConfig{
		Hasher:   csha256.Hasher{},
		HashSize: csha256.HashSize,
	})
}

func runRoot(c *cli.Context) error {
	tree, err := buildTree(c)
	if err != nil {
		return err
	}

	fmt.Printf("%x\n", tree.Root())
	return nil
}

func runProve(c *cli.Context) error {
	tree, err := buildTree(c)
	if err != nil {
		return err
	}

	proof, err := tree.Prove(c.Int("index"))
	if err != nil {
		return err
	}

	for _, step := range proof {
		fmt.Printf("%s:%x\n", sideName(step.Side), step.Sibling)
	}
	fmt.Printf("root: %x\n", tree.Root())
	return nil
}

func runVerify(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("verify takes exactly one element, got %d", c.NArg())
	}

	root, err := hex.DecodeString(c.String("root"))
	if err != nil {
		return fmt.Errorf("bad root digest: %w", err)
	}

	proof := make(canopy.Proof, 0, len(c.StringSlice("step")))
	for _, raw := range c.StringSlice("step") {
		step, err := parseStep(raw)
		if err != nil {
			return err
		}
		proof = append(proof, step)
	}

	ok := canopy.Verify(
		csha256.Hasher{}, csha256.HashSize,
		[]byte(c.Args().First()), proof, root,
	)
	fmt.Println(ok)
	return nil
}

func parseStep(raw string) (canopy.ProofStep, error) {
	side, digest, found := strings.Cut(raw, ":")
	if !found {
		return canopy.ProofStep{}, fmt.Errorf("step %q is not SIDE:HEXDIGEST", raw)
	}

	var step canopy.ProofStep
	switch side {
	case "left":
		step.Side = canopy.SideLeft
	case "right":
		step.Side = canopy.SideRight
	default:
		return canopy.ProofStep{}, fmt.Errorf("step side %q must be left or right", side)
	}

	var err error
	step.Sibling, err = hex.DecodeString(digest)
	if err != nil {
		return canopy.ProofStep{}, fmt.Errorf("bad step digest %q: %w", digest, err)
	}

	return step, nil
}

func sideName(s canopy.Side) string {
	if s == canopy.SideLeft {
		return "left"
	}
	return "right"
}
