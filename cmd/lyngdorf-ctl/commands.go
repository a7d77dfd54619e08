package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avcontrol/lyngdorf/internal/config"
	"github.com/avcontrol/lyngdorf/internal/discovery"
	"github.com/avcontrol/lyngdorf/internal/ui"
	"github.com/avcontrol/lyngdorf/pkg/lyngdorf"
	"github.com/avcontrol/lyngdorf/pkg/models"
)

// Command flags
var (
	devicePort     int
	modelName      string
	connectTimeout int
	saveName       string
)

func init() {
	rootCmd.PersistentFlags().IntVar(&devicePort, "port", lyngdorf.DefaultPort, "Device control port")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Device model (skips detection, e.g. mp-60)")
	rootCmd.PersistentFlags().IntVar(&connectTimeout, "timeout", 5, "Connect timeout in seconds")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(powerCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(muteCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(devicesCmd)
}

// splitDeviceArg separates an optional leading device argument from the
// n value arguments a command expects. With only n arguments the device
// falls back to the configured default.
func splitDeviceArg(args []string, n int) (device string, rest []string, err error) {
	switch len(args) {
	case n:
		return "", args, nil
	case n + 1:
		return args[0], args[1:], nil
	default:
		return "", nil, fmt.Errorf("expected [device] plus %d argument(s), got %d", n, len(args))
	}
}

// resolveTarget maps a device argument to a host and model using the
// config registry, the --model flag and on-the-wire detection, in that
// order of precedence for the model.
func resolveTarget(ctx context.Context, arg string) (host string, model models.Model, err error) {
	reg, err := config.LoadRegistry()
	if err != nil {
		return "", 0, err
	}

	host, name, ok := reg.Resolve(arg)
	if !ok {
		return "", 0, fmt.Errorf("no device given and no default device configured (see 'lyngdorf-ctl devices add')")
	}

	if modelName != "" {
		name = modelName
	}
	if name != "" {
		model, err = models.Lookup(name)
		return host, model, err
	}

	model, err = lyngdorf.Detect(ctx, host)
	if err != nil {
		return "", 0, fmt.Errorf("model detection failed (use --model to skip): %w", err)
	}
	return host, model, nil
}

// openReceiver resolves a device argument and connects to it. The caller
// must call Disconnect when done.
func openReceiver(ctx context.Context, arg string) (*lyngdorf.Receiver, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(connectTimeout)*time.Second)
	defer cancel()

	host, model, err := resolveTarget(ctx, arg)
	if err != nil {
		return nil, err
	}

	r := lyngdorf.NewReceiver(host, model, lyngdorf.WithPort(devicePort))
	if err := r.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect %s: %w", host, err)
	}
	return r, nil
}

// waitForStatus blocks until the device has answered the initial state
// queries, or the timeout passes. Status arrives as pushed frames with no
// request correlation, so volume is used as the readiness marker.
func waitForStatus(r *lyngdorf.Receiver, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, ok := r.Volume(); ok {
			// Give the remaining list frames a moment to drain.
			time.Sleep(100 * time.Millisecond)
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// scanCmd discovers devices on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for Lyngdorf devices on the network",
	Long: `Scan for Lyngdorf devices using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts and displays all devices whose
advertised name matches a supported model.`,
	Example: `  # Scan for 10 seconds (default)
  lyngdorf-ctl scan

  # Quick 3-second scan
  lyngdorf-ctl scan --scan-timeout 3`,
	RunE: runScan,
}

var scanTimeout int

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for Lyngdorf devices (timeout: %ds)...\n\n", scanTimeout)

	devices, err := discovery.ScanForDevices(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the device is powered on and on the same network")
		fmt.Println("  - Firewalls must allow mDNS (UDP port 5353)")
		fmt.Println("  - Try increasing --scan-timeout for slower networks")
		fmt.Println("  - Use 'lyngdorf-ctl detect <ip>' if you know the address")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))

	for i, device := range devices {
		fmt.Printf("%d. %s\n", i+1, device.Name)
		fmt.Printf("   Model: %s\n", device.Model)
		fmt.Printf("   IP:    %s:%d\n", device.IP, device.Port)
		fmt.Println()
	}

	fmt.Println("Use 'lyngdorf-ctl detect <ip> --save <name>' to save a device")
	return nil
}

// detectCmd probes a host for its model
var detectCmd = &cobra.Command{
	Use:   "detect <host>",
	Short: "Detect the model of a device",
	Long: `Connect to a device and ask which model it is.

The device identifies itself over the control connection, so no credentials
are needed. Use --save to remember the device under a short name.`,
	Example: `  # Probe a device
  lyngdorf-ctl detect 192.168.1.100

  # Probe and save it as "cinema"
  lyngdorf-ctl detect 192.168.1.100 --save cinema`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&saveName, "save", "", "Save the device in the config under this name")
}

func runDetect(cmd *cobra.Command, args []string) error {
	host := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(connectTimeout)*time.Second)
	defer cancel()

	model, err := lyngdorf.Detect(ctx, host)
	if err != nil {
		return err
	}

	fmt.Printf("%s is a %s %s\n", host, model.Descriptor().Manufacturer, model)

	if saveName != "" {
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		reg.RememberDevice(saveName, host, strings.ToLower(model.String()))
		if reg.Preferences.DefaultDevice == "" {
			reg.Preferences.DefaultDevice = saveName
		}
		if err := reg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("Saved as %q\n", saveName)
	}

	return nil
}

// statusCmd prints a one-shot status report
var statusCmd = &cobra.Command{
	Use:   "status [device]",
	Short: "Show device status",
	Long: `Connect to a device and print its current state.

Shows power, volume, active source and, where the model supports them,
RoomPerfect position, voicing and signal information.`,
	Example: `  # Status of the default device
  lyngdorf-ctl status

  # Status of a saved device
  lyngdorf-ctl status cinema

  # Status by IP, skipping model detection
  lyngdorf-ctl status 192.168.1.100 --model tdai-1120`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	device := ""
	if len(args) == 1 {
		device = args[0]
	}

	r, err := openReceiver(cmd.Context(), device)
	if err != nil {
		return err
	}
	defer r.Disconnect()

	waitForStatus(r, 3*time.Second)

	p := ui.NewPrinter(nil)
	printStatus(p, r)
	return nil
}

func printStatus(p *ui.Printer, r *lyngdorf.Receiver) {
	desc := r.Model().Descriptor()

	name, ok := r.Name()
	if !ok {
		name = r.Model().String()
	}
	p.PrintTitle(name, r.Host())

	p.PrintRow("Power", onOff(r.Power()))
	p.PrintRow("Volume", volumeString(r))
	p.PrintRow("Source", orUnknown(r.Source()))

	if in, ok := r.AudioInput(); ok {
		p.PrintRow("Audio in", in)
	}
	if desc.HasVideo {
		if in, ok := r.VideoInput(); ok {
			p.PrintRow("Video in", in)
		}
		p.PrintRow("Audio mode", orUnknown(r.AudioMode()))
	}
	if st, ok := r.StreamType(); ok {
		p.PrintRow("Stream", st)
	}
	if desc.HasRoomPerfect {
		p.PrintRow("RoomPerfect", orUnknown(r.RoomPerfectPosition()))
		p.PrintRow("Voicing", orUnknown(r.Voicing()))
	}
	if info, ok := r.AudioInfo(); ok {
		p.PrintRow("Audio", info)
	}
	if info, ok := r.VideoInfo(); ok {
		p.PrintRow("Video", info)
	}

	if desc.HasZoneB {
		p.Newline()
		p.Println("Zone B")
		p.PrintRow("Power", onOff(r.ZoneBPower()))
		if db, ok := r.ZoneBVolume(); ok {
			p.PrintRow("Volume", fmt.Sprintf("%.1f dB", db))
		}
		p.PrintRow("Source", orUnknown(r.ZoneBSource()))
	}
}

func onOff(on, known bool) string {
	if !known {
		return "unknown"
	}
	if on {
		return "on"
	}
	return "off"
}

func orUnknown(s string, ok bool) string {
	if !ok {
		return "unknown"
	}
	return s
}

func volumeString(r *lyngdorf.Receiver) string {
	db, ok := r.Volume()
	if !ok {
		return "unknown"
	}
	s := fmt.Sprintf("%.1f dB", db)
	if muted, known := r.Mute(); known && muted {
		s += " (muted)"
	}
	return s
}

// powerCmd switches the device on or off
var powerCmd = &cobra.Command{
	Use:   "power [device] <on|off>",
	Short: "Switch the device on or into standby",
	Example: `  # Power on the default device
  lyngdorf-ctl power on

  # Put a saved device into standby
  lyngdorf-ctl power cinema off`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPower,
}

func runPower(cmd *cobra.Command, args []string) error {
	device, rest, err := splitDeviceArg(args, 1)
	if err != nil {
		return err
	}
	on, err := parseOnOff(rest[0])
	if err != nil {
		return err
	}

	r, err := openReceiver(cmd.Context(), device)
	if err != nil {
		return err
	}
	defer r.Disconnect()

	return r.SetPower(on)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected 'on' or 'off', got %q", s)
	}
}

// volumeCmd sets or steps the main volume
var volumeCmd = &cobra.Command{
	Use:   "volume [device] <dB|up|down>",
	Short: "Set or step the main zone volume",
	Long: `Set the main zone volume to an absolute level in dB, or step it.

Levels are given in dB relative to reference, e.g. -25 or -22.5. The valid
range depends on the model. 'up' and 'down' step by the device's native
increment.`,
	Example: `  # Set the default device to -25 dB
  lyngdorf-ctl volume -- -25

  # Step a saved device up
  lyngdorf-ctl volume cinema up`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runVolume,
}

func runVolume(cmd *cobra.Command, args []string) error {
	device, rest, err := splitDeviceArg(args, 1)
	if err != nil {
		return err
	}

	r, err := openReceiver(cmd.Context(), device)
	if err != nil {
		return err
	}
	defer r.Disconnect()

	switch strings.ToLower(rest[0]) {
	case "up":
		return r.VolumeUp()
	case "down":
		return r.VolumeDown()
	}

	db, err := strconv.ParseFloat(rest[0], 64)
	if err != nil {
		return fmt.Errorf("expected a dB level, 'up' or 'down', got %q", rest[0])
	}
	return r.SetVolume(db)
}

// muteCmd controls the main zone mute
var muteCmd = &cobra.Command{
	Use:   "mute [device] <on|off>",
	Short: "Mute or unmute the main zone",
	Example: `  # Mute the default device
  lyngdorf-ctl mute on

  # Unmute a saved device
  lyngdorf-ctl mute cinema off`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMute,
}

func runMute(cmd *cobra.Command, args []string) error {
	device, rest, err := splitDeviceArg(args, 1)
	if err != nil {
		return err
	}
	on, err := parseOnOff(rest[0])
	if err != nil {
		return err
	}

	r, err := openReceiver(cmd.Context(), device)
	if err != nil {
		return err
	}
	defer r.Disconnect()

	return r.SetMute(on)
}

// sourceCmd lists or selects input sources
var sourceCmd = &cobra.Command{
	Use:   "source [device] [name]",
	Short: "List or select input sources",
	Long: `Without a name, list the device's input sources with the active one
marked. With a name, select that source. Names are matched case
insensitively against the device's own source list.`,
	Example: `  # List sources on the default device
  lyngdorf-ctl source

  # Select a source by name
  lyngdorf-ctl source "Apple TV"

  # Select a source on a saved device
  lyngdorf-ctl source cinema "Blu-ray"`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSource,
}

func runSource(cmd *cobra.Command, args []string) error {
	// A single argument is ambiguous between a device and a source name.
	// Treat it as a device only when the registry knows it.
	device, name := "", ""
	switch len(args) {
	case 1:
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if reg.GetDevice(args[0]) != nil {
			device = args[0]
		} else {
			name = args[0]
		}
	case 2:
		device, name = args[0], args[1]
	}

	r, err := openReceiver(cmd.Context(), device)
	if err != nil {
		return err
	}
	defer r.Disconnect()

	waitForStatus(r, 3*time.Second)

	if name != "" {
		return r.SetSource(name)
	}

	current, _ := r.Source()
	for _, e := range r.Sources() {
		marker := "  "
		if strings.EqualFold(e.Name, current) {
			marker = "* "
		}
		fmt.Printf("%s%d  %s\n", marker, e.Index, e.Name)
	}
	return nil
}

// watchCmd shows a live status dashboard
var watchCmd = &cobra.Command{
	Use:   "watch [device]",
	Short: "Show a live status dashboard",
	Long: `Open a full-screen dashboard that follows the device's state in real
time. The device pushes status changes over the control connection, so
updates appear as they happen, including changes made from the remote or
front panel.

When stdout is not a terminal, a single status snapshot is printed instead.`,
	Example: `  # Watch the default device
  lyngdorf-ctl watch

  # Watch a saved device
  lyngdorf-ctl watch cinema`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	device := ""
	if len(args) == 1 {
		device = args[0]
	}

	r, err := openReceiver(cmd.Context(), device)
	if err != nil {
		return err
	}
	defer r.Disconnect()

	waitForStatus(r, 3*time.Second)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(ui.RenderStatus(r))
		return nil
	}

	p := tea.NewProgram(ui.NewDashboard(r), tea.WithAltScreen())

	changed := r.OnChange(func() {
		p.Send(ui.StatusMsg{})
	})
	defer r.Unregister(changed)

	lost := r.OnConnectionLost(func(err error) {
		p.Send(ui.ConnectionLostMsg{Err: err})
	})
	defer r.Unregister(lost)

	_, err = p.Run()
	return err
}

// devicesCmd manages the saved device registry
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List and manage saved devices",
	Long: `Manage the local device registry. Saved devices can be used by name
in every command, and one of them can be marked as the default.`,
	Example: `  # List saved devices
  lyngdorf-ctl devices

  # Save a device under a short name
  lyngdorf-ctl devices add cinema 192.168.1.100 mp-60

  # Make it the default
  lyngdorf-ctl devices default cinema`,
	RunE: runDevicesList,
}

var devicesAddCmd = &cobra.Command{
	Use:   "add <name> <host> [model]",
	Short: "Save a device under a short name",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runDevicesAdd,
}

var devicesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a saved device",
	Args:  cobra.ExactArgs(1),
	RunE:  runDevicesRemove,
}

var devicesDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Set the default device",
	Args:  cobra.ExactArgs(1),
	RunE:  runDevicesDefault,
}

func init() {
	devicesCmd.AddCommand(devicesAddCmd)
	devicesCmd.AddCommand(devicesRemoveCmd)
	devicesCmd.AddCommand(devicesDefaultCmd)
}

func runDevicesList(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	if len(reg.Devices) == 0 {
		fmt.Println("No saved devices. Use 'lyngdorf-ctl devices add <name> <host> [model]'.")
		return nil
	}

	names := make([]string, 0, len(reg.Devices))
	for name := range reg.Devices {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d := reg.Devices[name]
		marker := "  "
		if reg.Preferences != nil && reg.Preferences.DefaultDevice == name {
			marker = "* "
		}
		line := fmt.Sprintf("%s%-12s %-16s %s", marker, name, d.Host, d.Model)
		if d.Nickname != "" {
			line += fmt.Sprintf("  (%s)", d.Nickname)
		}
		fmt.Println(strings.TrimRight(line, " "))
	}
	return nil
}

func runDevicesAdd(cmd *cobra.Command, args []string) error {
	name, host := args[0], args[1]
	model := ""
	if len(args) == 3 {
		// Validate before saving so typos surface here, not on first use.
		m, err := models.Lookup(args[2])
		if err != nil {
			return err
		}
		model = strings.ToLower(m.String())
	}

	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	reg.RememberDevice(name, host, model)
	if reg.Preferences.DefaultDevice == "" {
		reg.Preferences.DefaultDevice = name
	}
	if err := reg.Save(); err != nil {
		return err
	}
	fmt.Printf("Saved %q -> %s\n", name, host)
	return nil
}

func runDevicesRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	if reg.GetDevice(name) == nil {
		return fmt.Errorf("no saved device named %q", name)
	}
	delete(reg.Devices, name)
	if reg.Preferences != nil && reg.Preferences.DefaultDevice == name {
		reg.Preferences.DefaultDevice = ""
	}
	if err := reg.Save(); err != nil {
		return err
	}
	fmt.Printf("Removed %q\n", name)
	return nil
}

func runDevicesDefault(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	if reg.GetDevice(name) == nil {
		return fmt.Errorf("no saved device named %q", name)
	}
	reg.Preferences.DefaultDevice = name
	if err := reg.Save(); err != nil {
		return err
	}
	fmt.Printf("Default device is now %q\n", name)
	return nil
}
