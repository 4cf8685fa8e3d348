package internal

// Version is the current newscast release.
const Version = "0.3.0"
