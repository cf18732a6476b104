package version

// Version is reported by --version and in the usage banner.
const Version = "0.3.0"
