package model

// Package model defines domain data structures used across the app: slots,
// their persistable specs, bar settings, and the direction / display mode
// enums. Structures are plain values; ownership and ordering live in the
// bar package.
