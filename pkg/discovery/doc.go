// Package discovery finds collectors on the local network over
// mDNS/DNS-SD.
//
// Collectors advertise under the _clog._tcp service type. TXT records
// carry optional "version" and "region" metadata. Browsing aggregates
// per-interface announcements by instance name, so one collector seen
// on several interfaces surfaces as a single entry with all of its
// addresses.
//
// Discovery is a convenience for operators and development setups;
// production configs normally name the collector host explicitly.
package discovery
