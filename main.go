package main

import "github.com/ccorchooo/CalAIFree/cmd/calai"

func main() {
	calai.Execute()
}
