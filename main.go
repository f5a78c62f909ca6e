package main

import "github.com/pierreleocadie/SecuraLedger/cmd/securaledger"

func main() {
	securaledger.Execute()
}
