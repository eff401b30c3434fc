package sportsdata

import "time"

const (
	defaultProxyURL    = "http://localhost:4001/nba-api-proxy"
	defaultHTTPTimeout = 15 * time.Second
	errorBodyLimit     = 512

	defaultConference     = "Eastern"
	defaultDivision       = "Unknown"
	defaultPrimaryColor   = "#000000"
	defaultSecondaryColor = "#FFFFFF"
	defaultHeight         = `6'0"`
	defaultWeight         = "200"
	unknownVenue          = "TBD"
	unknownTime           = "TBD"
)
