package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	clientconfig "github.com/qchain/sdk-go/client/config"
	"github.com/qchain/sdk-go/wallet/evm"
)

const artifactPath = "deployments/deployed.json"

var (
	deployNetwork string
	deployRPC     string
	deployKey     string
	deployConfig  string
	deployTimeout time.Duration
)

// DeployedContract records one contract from a deploy run.
type DeployedContract struct {
	Address string `json:"address"`
	TxHash  string `json:"tx_hash"`
	GasUsed uint64 `json:"gas_used"`
}

// Artifact is the JSON document written to deployments/deployed.json.
type Artifact struct {
	Network    string                      `json:"network"`
	ChainID    string                      `json:"chain_id"`
	DeployedAt time.Time                   `json:"deployed_at"`
	Contracts  map[string]DeployedContract `json:"contracts"`
}

func addDeployFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&deployNetwork, "network", "n", "",
		"Target network (mainnet, testnet, betanet)")
	cmd.Flags().StringVar(&deployRPC, "rpc", "",
		"EVM JSON-RPC endpoint")
	cmd.Flags().StringVar(&deployKey, "key", "",
		"Hex-encoded deployer private key")
	cmd.Flags().StringVarP(&deployConfig, "config", "c", "",
		"Path to a TOML config file")
	cmd.Flags().DurationVar(&deployTimeout, "timeout", 3*time.Minute,
		"Overall deploy timeout")
}

func NewAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Deploy the fraud registry and the escrow contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, []string{"fraud-registry", "escrow"})
		},
	}
	addDeployFlags(cmd)
	return cmd
}

func NewSimpleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simple",
		Short: "Deploy only the escrow contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, []string{"escrow"})
		},
	}
	addDeployFlags(cmd)
	return cmd
}

func runDeploy(cmd *cobra.Command, contracts []string) error {
	// Priority: flag > env > config file > default.
	var fileCfg *clientconfig.Config
	if deployConfig != "" {
		cfg, err := clientconfig.LoadFile(deployConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		fileCfg = &cfg
	}

	if !cmd.Flags().Changed("network") {
		if env := os.Getenv("QCHAIN_NETWORK"); env != "" {
			deployNetwork = env
		} else if fileCfg != nil && fileCfg.Network != "" {
			deployNetwork = string(fileCfg.Network)
		} else {
			deployNetwork = "testnet"
		}
	}
	if !cmd.Flags().Changed("rpc") {
		if env := os.Getenv("QCHAIN_EVM_RPC"); env != "" {
			deployRPC = env
		} else if fileCfg != nil {
			deployRPC = fileCfg.EVMRPCURL
		}
	}
	if deployKey == "" {
		deployKey = os.Getenv("QCHAIN_DEPLOY_KEY")
	}

	if deployNetwork != "mainnet" && deployNetwork != "testnet" && deployNetwork != "betanet" {
		return fmt.Errorf("invalid network: %s (must be 'mainnet', 'testnet' or 'betanet')", deployNetwork)
	}
	if deployRPC == "" {
		return fmt.Errorf("no rpc endpoint: pass --rpc, set QCHAIN_EVM_RPC, or set evm_rpc_url in the config file")
	}
	if deployKey == "" {
		return fmt.Errorf("no deployer key: pass --key or set QCHAIN_DEPLOY_KEY")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(deployKey, "0x"))
	if err != nil {
		return fmt.Errorf("parse deployer key: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), deployTimeout)
	defer cancel()

	color.Cyan("Deploying to %s via %s", deployNetwork, deployRPC)

	conn, err := evm.Dial(ctx, deployRPC)
	if err != nil {
		return err
	}
	defer conn.Close()

	gasFor := map[string]uint64{
		"fraud-registry": fraudRegistryGas,
		"escrow":         escrowGas,
	}

	result := Artifact{
		Network:    deployNetwork,
		ChainID:    conn.ChainID().String(),
		DeployedAt: time.Now().UTC(),
		Contracts:  make(map[string]DeployedContract, len(contracts)),
	}

	for _, name := range contracts {
		code, err := contractBytecode(name)
		if err != nil {
			return err
		}

		fmt.Printf("  %s ... ", name)
		addr, tx, err := conn.Deploy(ctx, key, code, gasFor[name])
		if err != nil {
			color.Red("failed")
			return fmt.Errorf("deploy %s: %w", name, err)
		}
		receipt, err := conn.WaitMined(ctx, tx)
		if err != nil {
			color.Red("failed")
			return fmt.Errorf("deploy %s: %w", name, err)
		}
		color.Green("%s", addr.Hex())

		result.Contracts[name] = DeployedContract{
			Address: addr.Hex(),
			TxHash:  tx.Hash().Hex(),
			GasUsed: receipt.GasUsed,
		}
	}

	if err := writeArtifact(result); err != nil {
		return err
	}
	color.Green("Wrote %s", artifactPath)
	return nil
}

func writeArtifact(a Artifact) error {
	if err := os.MkdirAll(filepath.Dir(artifactPath), 0o755); err != nil {
		return fmt.Errorf("create deployments dir: %w", err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := os.WriteFile(artifactPath, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}
