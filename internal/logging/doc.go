// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

/*
Package logging provides structured logging for the Affinity service,
built on rs/zerolog.

A single process-wide logger is initialized once at startup via Init and
accessed through package-level helpers (Logger, With, Info, Error, ...).
Components derive their own loggers with a "component" field:

	log := logging.With().Str("component", "recommend").Logger()

Request-scoped fields (request ID, correlation ID) travel through
context.Context; FromContext returns a logger enriched with whatever
identifiers the context carries.

Output is either human-readable console (development) or JSON (production),
selected by Config.Format.
*/
package logging
