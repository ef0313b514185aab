package main

import _ "embed"

// envExampleContract lists the recognized settings; absent ones are reported at startup.
//
//go:embed .env.example
var envExampleContract string
