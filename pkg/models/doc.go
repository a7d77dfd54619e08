// Package models holds the capability descriptors for all supported
// Lyngdorf devices.
//
// Each supported model is described by an immutable Descriptor: the mapping
// from logical parameters to protocol command mnemonics, the setup query
// sequence, feature flags (zone B, video routing, RoomPerfect), the set of
// available trim channels, and the fixed-point scale factors used to encode
// decibel values on the wire.
//
// # Protocol Families
//
// Six models share one protocol family with differing vocabularies:
//   - MP-40, MP-50, MP-60: multichannel processors. Main zone plus zone B,
//     video input/output routing, full trim set, RoomPerfect.
//   - TDAI-1120, TDAI-2170: integrated amplifiers. Standard TDAI commands,
//     bass/treble trims only.
//   - TDAI-3400: integrated amplifier speaking an I-prefixed variant of the
//     TDAI vocabulary (IVOL, ION, IPING, ...).
//
// # Fixed-Point Scale Factors
//
// Decibel values travel as signed integers. The scale factor (wire units
// per dB) is part of the descriptor and differs per family:
//
//	MP series    volume  20 units/dB  (-22.5 dB <-> -450)
//	TDAI series  volume  10 units/dB  (-22.5 dB <-> -225)
//	all models   trims   10 units/dB  ( +1.0 dB <->   10)
//
// An off-by-one here silently mis-sets physical volume, so the mapping is
// exercised bit-exactly by the package tests.
//
// # Usage Example
//
//	model, err := models.Lookup("mp-60")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	desc := model.Descriptor()
//	cmd, _ := desc.Command(models.ParamVolume) // "VOL"
//	wire := desc.FormatVolume(-22.5)           // "-450"
//
// Lookups are case-insensitive. Feature queries are pure functions of the
// descriptor; nothing in this package performs I/O.
package models
