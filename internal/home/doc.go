// Package home holds the state behind the Main, History and Settings screens.
//
// Most of it is fixed display data (usage numbers, quotes, streak). The parts
// that persist go through storage.Adapter: the blocked-app counter, the
// history log, the settings document and the streak record.
package home
