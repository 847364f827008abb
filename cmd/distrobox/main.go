// SPDX-License-Identifier: MPL-2.0

// Command distrobox manages lightweight host-integrated container
// sandboxes: containers sharing the host's home, devices, and namespaces,
// entered as if they were native host shells.
package main

func main() {
	Execute()
}
