package main

import "github.com/luismrgarcia/zigbee2mqtt/internal/cli"

func main() {
	cli.Execute()
}
