package main

import (
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	"github.com/quorumkey/wallet-custody-backend/custody"
	"github.com/quorumkey/wallet-custody-backend/interfaces"
	"github.com/quorumkey/wallet-custody-backend/shamir"
	"github.com/quorumkey/wallet-custody-backend/wallet"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sharetool",
		Usage: "Offline threshold secret splitting and recovery",
		Commands: []*cli.Command{
			{
				Name:  "split",
				Usage: "Split a hex secret into shares",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "secret-hex",
						Usage:    "hex-encoded secret to split",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "degree",
						Value: 2,
						Usage: "polynomial degree; degree+1 shares reconstruct",
					},
					&cli.IntFlag{
						Name:  "parties",
						Value: 3,
						Usage: "number of shares to produce",
					},
				},
				Action: runSplit,
			},
			{
				Name:  "recover",
				Usage: "Recover a hex secret from shares",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "degree",
						Value: 2,
						Usage: "polynomial degree the secret was split with",
					},
					&cli.StringSliceFlag{
						Name:  "share",
						Usage: "share as x:y decimal pair, repeatable",
					},
				},
				Action: runRecover,
			},
			{
				Name:  "wallet",
				Usage: "Generate a fresh wallet key pair",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Value: "ethereum",
						Usage: "wallet kind: ethereum or bitcoin",
					},
				},
				Action: runWallet,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(fmt.Errorf("sharetool: %w", err))
	}
}

func runSplit(cCtx *cli.Context) error {
	secret, err := custody.ParseSecretHex(cCtx.String("secret-hex"))
	if err != nil {
		return err
	}

	engine, err := shamir.NewEngine(cCtx.Int("degree"))
	if err != nil {
		return err
	}

	shares, err := engine.Split(secret, cCtx.Int("parties"))
	if err != nil {
		return err
	}

	fmt.Printf("threshold: %d of %d\n", engine.Threshold(), len(shares))
	for _, share := range shares {
		fmt.Printf("%s:%s\n", share.X, share.Y)
	}
	return nil
}

func runRecover(cCtx *cli.Context) error {
	engine, err := shamir.NewEngine(cCtx.Int("degree"))
	if err != nil {
		return err
	}

	raw := cCtx.StringSlice("share")
	shares := make([]shamir.Share, 0, len(raw))
	for _, pair := range raw {
		x, y, found := strings.Cut(pair, ":")
		if !found {
			return fmt.Errorf("invalid share %q, expected x:y", pair)
		}
		share, err := parseShare(x, y)
		if err != nil {
			return err
		}
		shares = append(shares, share)
	}

	secret, err := engine.Reconstruct(shares)
	if err != nil {
		return err
	}

	fmt.Println(custody.EncodeSecretHex(secret))
	return nil
}

func parseShare(x, y string) (shamir.Share, error) {
	var share shamir.Share
	var ok bool
	if share.X, ok = newInt(x); !ok {
		return shamir.Share{}, fmt.Errorf("invalid share coordinate %q", x)
	}
	if share.Y, ok = newInt(y); !ok {
		return shamir.Share{}, fmt.Errorf("invalid share value %q", y)
	}
	return share, nil
}

func newInt(s string) (*big.Int, bool) {
	return new(big.Int).SetString(s, 10)
}

func runWallet(cCtx *cli.Context) error {
	kind := interfaces.WalletKind(cCtx.String("kind"))

	pair, err := wallet.NewGenerator().Generate(kind)
	if err != nil {
		return err
	}

	fmt.Printf("kind:        %s\n", pair.Kind)
	fmt.Printf("public key:  %s\n", pair.PublicKey)
	fmt.Printf("private key: %s\n", pair.PrivateKeyHex)
	return nil
}
