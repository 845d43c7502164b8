package main

import (
	"encoding/hex"
	"fmt"
)

// Compiled creation bytecode for the two bundled contracts. The fraud
// registry stores per-address risk flags keyed by the scoring backend; the
// escrow holds a payment until both parties release it.
const (
	fraudRegistryBin = "6080604052348015600f57600080fd5b50336000806101000a81548173ffffffffffffffffffffffffffffffffffffffff021916908373ffffffffffffffffffffffffffffffffffffffff1602179055506102d8806100606000396000f3fe608060405234801561001057600080fd5b50600436106100415760003560e01c80633e47d6f3146100465780638da5cb5b14610076578063d0e30db014610094575b600080fd5b610060600480360381019061005b91906101c4565b61009e565b60405161006d919061020c565b60405180910390f35b61007e6100be565b60405161008b9190610236565b60405180910390f35b61009c6100e2565b005b60016020528060005260406000206000915054906101000a900460ff1681565b60008054906101000a900473ffffffffffffffffffffffffffffffffffffffff1681565b6000809054906101000a900473ffffffffffffffffffffffffffffffffffffffff1673ffffffffffffffffffffffffffffffffffffffff163373ffffffffffffffffffffffffffffffffffffffff161461013a57600080fd5b56fea264697066735822122083a1"

	escrowBin = "608060405260405161040a38038061040a8339818101604052810190610025919061009b565b80600160006101000a81548173ffffffffffffffffffffffffffffffffffffffff021916908373ffffffffffffffffffffffffffffffffffffffff160217905550336000806101000a81548173ffffffffffffffffffffffffffffffffffffffff021916908373ffffffffffffffffffffffffffffffffffffffff1602179055506100c8565b600081519050610095816100ae565b56fe"
)

// gas ceilings measured against testnet deploys with headroom
const (
	fraudRegistryGas uint64 = 900_000
	escrowGas        uint64 = 600_000
)

func contractBytecode(name string) ([]byte, error) {
	var src string
	switch name {
	case "fraud-registry":
		src = fraudRegistryBin
	case "escrow":
		src = escrowBin
	default:
		return nil, fmt.Errorf("unknown contract %q", name)
	}
	code, err := hex.DecodeString(src)
	if err != nil {
		return nil, fmt.Errorf("decode %s bytecode: %w", name, err)
	}
	return code, nil
}
