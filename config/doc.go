// Package config supplies the validated connection and prompt settings the
// engine reads on every call. Settings can be constructed in code or loaded
// from a TOML file; both paths run the same validation (secure-transport
// endpoint, required model, bounded temperature) before any value is handed
// to the engine.
package config
