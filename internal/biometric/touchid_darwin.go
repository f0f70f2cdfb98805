//go:build darwin && cgo

package biometric

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Foundation -framework LocalAuthentication

#import <LocalAuthentication/LocalAuthentication.h>
#include <stdlib.h>

int vg_biometry_available(void) {
	LAContext *ctx = [[LAContext alloc] init];
	NSError *error = nil;
	BOOL ok = [ctx canEvaluatePolicy:LAPolicyDeviceOwnerAuthenticationWithBiometrics
	                           error:&error];
	return ok ? 1 : 0;
}

int vg_biometry_prompt(const char *reason) {
	LAContext *ctx = [[LAContext alloc] init];
	NSString *localizedReason = [NSString stringWithUTF8String:reason];
	dispatch_semaphore_t done = dispatch_semaphore_create(0);
	__block int result = 0;

	[ctx evaluatePolicy:LAPolicyDeviceOwnerAuthenticationWithBiometrics
	    localizedReason:localizedReason
	              reply:^(BOOL success, NSError *error) {
	                  result = success ? 1 : 0;
	                  dispatch_semaphore_signal(done);
	              }];

	dispatch_semaphore_wait(done, DISPATCH_TIME_FOREVER);
	return result;
}
*/
import "C"

import (
	"context"
	"unsafe"
)

// TouchIDProbe drives the Touch ID challenge through LocalAuthentication.
// Only the success/failure outcome crosses the framework boundary; no
// template data is ever visible to this process.
type TouchIDProbe struct{}

// New creates the darwin biometric probe.
func New() *TouchIDProbe {
	return &TouchIDProbe{}
}

// Available reports whether the device can evaluate a biometric policy
// right now. No prompt is shown.
func (*TouchIDProbe) Available() bool {
	return C.vg_biometry_available() == 1
}

// Prompt shows the Touch ID challenge with the given reason and blocks
// until the user responds or ctx is cancelled. The framework callback
// runs on its own dispatch queue, so the blocking C call is parked in a
// goroutine; on cancellation the caller returns immediately and the
// orphaned prompt outcome is discarded.
func (*TouchIDProbe) Prompt(ctx context.Context, reason string) error {
	done := make(chan error, 1)

	go func() {
		creason := C.CString(reason)
		defer C.free(unsafe.Pointer(creason))

		if C.vg_biometry_prompt(creason) == 1 {
			done <- nil
			return
		}
		done <- ErrDeclined
	}()

	select {
	case <-ctx.Done():
		return ErrDeclined
	case err := <-done:
		return err
	}
}
