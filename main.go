package main

import "github.com/adikrishnan/expense-ledger/cmd"

func main() {
	cmd.Execute()
}
