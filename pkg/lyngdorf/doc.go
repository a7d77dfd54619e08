// Package lyngdorf is a client driver for Lyngdorf audio and video
// processors. It speaks the ASCII control protocol on TCP port 84 and keeps
// a live mirror of the device state.
//
// # Usage
//
// Create a Receiver for a known model and connect:
//
//	r := lyngdorf.NewReceiver("192.168.1.100", models.MP60)
//	if err := r.Connect(ctx); err != nil {
//	    return err
//	}
//	defer r.Disconnect()
//
//	r.OnChange(func() {
//	    if db, ok := r.Volume(); ok {
//	        fmt.Printf("volume %.1f dB\n", db)
//	    }
//	})
//	r.SetVolume(-22.5)
//
// When the model is not known up front, ask the device:
//
//	model, err := lyngdorf.Detect(ctx, "192.168.1.100")
//
// # State model
//
// The driver is push oriented. On connect it puts the device in verbose
// mode and queries the full state; after that the device announces every
// change and the Receiver updates its mirror. Getters return the cached
// value with a second boolean result that is false until the device has
// reported that value. Setters write optimistically and the device echo is
// authoritative.
//
// A dropped link is reported once through OnConnectionLost and never
// redialed by the driver; reconnect policy belongs to the caller.
package lyngdorf
