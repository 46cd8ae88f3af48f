// Package platform holds OS-facing helpers that sit outside the
// scheduling core.
package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another process already holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// instancePortRange bounds the ephemeral-ish range the lock port is
// hashed into.
const (
	instancePortMin = 20000
	instancePortMax = 39999
)

// InstanceLock is a process-wide mutual exclusion handle. Two live
// instances would each fire every reminder and race on the reminders
// file, so only the first process to bind the lock port may run.
type InstanceLock struct {
	listener net.Listener
}

// AcquireInstanceLock binds a localhost port derived from appName.
// It returns ErrAlreadyRunning when the port is taken.
func AcquireInstanceLock(appName string) (*InstanceLock, error) {
	address := fmt.Sprintf("127.0.0.1:%d", lockPort(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceLock{listener: listener}, nil
}

// Release frees the lock. Safe to call on a nil lock.
func (l *InstanceLock) Release() error {
	if l == nil || l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

// lockPort hashes appName into a stable port so every instance of the
// same app contends for the same address.
func lockPort(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	span := instancePortMax - instancePortMin + 1
	return instancePortMin + int(hash.Sum32()%uint32(span))
}
