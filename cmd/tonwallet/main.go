// Command tonwallet manages a TON wallet v4r2 from the terminal or over HTTP.
//
// Configuration comes from the environment (or a .env file): NETWORK, MNEMONIC or
// WALLET_FILE_PATH, POLL_INTERVAL, CONFIRM_TIMEOUT and friends.
package main

import (
	"fmt"
	"os"
)

// @title        TON Wallet API
// @version      1.0
// @description  Local TON wallet v4r2: balance, transfers confirmed by seqno, encrypted keystore.
// @BasePath     /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
