// Package authz decides whether an anchor request may proceed.
//
// The gate is a pure function over what it is handed: the caller identity
// resolved by the authentication layer, the credentials that layer already
// verified, and the rating record. It never fetches or verifies credential
// signatures itself.
package authz
