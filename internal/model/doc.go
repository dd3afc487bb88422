// Package model defines the data types exchanged with the exchange and persisted locally.
//
// Conventions:
//   - JSON keys are camelCase; decoding matches keys case-insensitively.
//   - Cash amounts are exact decimals encoded as bare JSON numbers.
//   - Team IDs match [A-Za-z0-9_-]{1,50}.
package model
