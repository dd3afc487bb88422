// Package bootstrap drives the startup sequence that leaves the exchange client
// authenticated:
//
//	Init -> ConnectivityChecked -> CredentialsResolved -> AuthConfigured -> Ready
//
// Any state can move to Aborted on cancellation or an unrecoverable error. Once
// credentials have been persisted, later runs go straight from the credential
// lookup to configuring authentication without registering again.
package bootstrap
