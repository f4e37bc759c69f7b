// Package notify turns billing and health findings into staff notices and
// delivers them through pluggable channels. The billing core only produces
// text; this package owns rendering and transport, with best-effort fan-out
// across channels.
package notify
