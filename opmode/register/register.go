// Package register registers all programs
package register

import (
	// register programs.
	_ "github.com/fieldbot/teleop/opmode/autoturn"
	_ "github.com/fieldbot/teleop/opmode/relicrecovery"
	_ "github.com/fieldbot/teleop/opmode/skittlebot"
	_ "github.com/fieldbot/teleop/opmode/velocityvortex"
)
