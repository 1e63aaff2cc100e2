// Package config defines the hsmctl configuration model: cluster identity,
// target region and credential profile, network layout, HSM sizing, PKI
// subject parameters, and optional artifact storage. Configuration is read
// from a YAML file; operational timeouts can be overridden through
// environment variables.
package config
