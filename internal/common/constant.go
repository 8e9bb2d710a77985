// Package common contains shared constants and sentinel errors used across
// the dashboard components.
package common

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "aqidash_session"

// SelectAllStations is the station choice that disables station filtering.
const SelectAllStations = "Selectall"
