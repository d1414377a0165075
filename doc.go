/*
Package eos is a library for signing and pushing transactions to an EOSIO
chain from within a Go program. Compatible with any node exposing the
standard "/v1/chain" HTTP API.

Work in progress. Some RPC methods are missing, but they're trivial to add.
Pull requests are welcome.

Features:

	* WIF key decoding and compressed secp256k1 public key / EOS address
	  derivation

	* a Keychain mapping "actor@permission" authorizations to keys

	* canonical, ABI-driven binary serialization of actions and transactions

	* deterministic signing with EOSIO's canonical-signature retry loop

	* a small set of strongly-typed RPC calls, composed by Client into the
	  full sign-and-push workflow

	* an "eosctl" CLI for the same operations from the command line

Why

Most EOSIO client libraries carry the ABI compiler, the smart contract
toolchain, or a generic JSON-RPC abstraction meant to cover chains this one
doesn't need to cover. This package consists of just one package, pulls in
only the dependencies its actual job requires, and assumes its caller already
knows which contract and actions they're calling.

Types

Interacting with an EOSIO node over HTTP involves transmitting raw bytes and
64-bit packed names in hex or base32-ish text form. This package provides
HexBytes for the former and Name for the latter, along with the handful of
request/response shapes ("ChainInfo", "Abi", "Action", "Transaction") used by
the RPC calls and the serializer.

Keys and signing

PrivateKey and PublicKey wrap the raw 32- and 33-byte forms used by secp256k1
on this chain. Keychain holds private keys behind "actor@permission" labels
so that a Transaction's actions can be built, and later signed, without the
caller juggling raw keys. Sign implements the chain's canonical-signature
requirement directly, retrying with a different deterministic nonce until
the resulting signature satisfies it.

Serialization

Pack implements the chain's binary transaction format: a small recursive
dispatch over primitive types, arrays, structs, and the action/transaction
composites, driven by a contract's ABI where the shape of the data isn't
otherwise known. UnpackRow does the inverse for "get_table_rows" results.
*/
package eos
