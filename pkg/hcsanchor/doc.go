// Package hcsanchor anchors rating fingerprints on the Hedera Consensus
// Service. Each anchor is a single topic message; its reference is the
// submitting transaction ID, and resolution goes back through the mirror
// node to read the message at that transaction's consensus timestamp.
//
// # Message format
//
// An anchor topic carries the memo "tsi-anchor:0:<ttl>". Each message is a
// small JSON document:
//
//	{"p":"tsi-anchor","op":"anchor","fp":"<64 hex>","m":"Rating anchor for subject:42"}
//
// When a Sealer is configured the plain "fp" field is replaced by "sfp", an
// ECDH (secp256k1) + AES-256-GCM envelope that only the holder of the
// recipient private key can open. With Compress set, the message is brotli
// compressed and wrapped as {"c":"data:application/json;base64,..."}.
// Resolve accepts every form, and refuses to inflate a payload past 64 KiB.
//
// Reading needs no operator account. A Reader talks only to the mirror
// node; a Client embeds one and adds topic creation and submission.
//
// # Getting Started
//
//	client, err := hcsanchor.NewClient(hcsanchor.ClientConfig{
//		OperatorAccountID:  "0.0.1234",
//		OperatorPrivateKey: "<private-key>",
//		Network:            "testnet",
//		TopicID:            "0.0.5678",
//	})
//
//	reference, err := client.Submit(ctx, fingerprint, "Rating anchor for subject:42")
//
//	reader, err := hcsanchor.NewReader(hcsanchor.ReaderConfig{
//		Network: "testnet",
//		TopicID: "0.0.5678",
//	})
//	fingerprint, err := reader.Resolve(ctx, reference)
package hcsanchor
