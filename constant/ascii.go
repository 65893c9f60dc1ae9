package constant

// AsciiArtLogo is the application's banner shown in the root command help.
const AsciiArtLogo = `
  ___ _ _    _       _
 | __| (_)__| |_____| |_____ _ _
 | _|| | / _| / / -_)   / -_) '_|
 |_| |_|_\__|_\_\___|_|_\___|_|
`
