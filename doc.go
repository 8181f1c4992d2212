// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// dsvcut is the main package for the dsvcut command line tool. It streams a
// comma or tab separated file, or stdin, to stdout, optionally keeping only
// the named columns in the requested order.
package main
