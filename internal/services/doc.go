// Package services hosts the external tool integrations the muxing
// pipeline shells out to, plus the shared error markers that classify
// their failures.
//
// Use the Wrap helper when adding new tool clients so failure reporting
// stays uniform: callers can distinguish bad input (ErrValidation), bad
// setup (ErrConfiguration), and the tool itself misbehaving
// (ErrExternalTool) without parsing message text.
package services
