// Package configs manages paths and user configuration for openseason.
//
// # Settings
//
// Settings resolves every on-disk location once per process:
//
//   - AppRoot: ~/.open-season (or $OPENSEASON_HOME)
//   - HuntsDir: <AppRoot>/hunts, one directory per case
//   - SaltPath: <AppRoot>/salt, the cleartext vault salt
//   - AuditPath: <AppRoot>/audit.jsonl
//   - UserConfigsPath: <user config dir>/openseason
//
// Tests replace VaultSettings with temporary directories.
//
// # User Configuration
//
// config.toml under UserConfigsPath holds tunables. Changing the [kdf]
// section after evidence has been encrypted makes that evidence
// undecryptable, so the defaults are only written on first use.
//
//	[kdf]
//	time = 2
//	memory_kib = 19456
//	threads = 1
//
//	[vault]
//	min_password_score = 3
package configs
