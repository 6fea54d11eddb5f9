package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-network/asset-universe/pkg/utils"
)

// Persistence saves and loads raw snapshot byte buffers by name. The
// default implementation, FilePersistence, writes them as flat files,
// matching spec section 6's headerless, checksum-less snapshot format.
type Persistence interface {
	Save(name string, data []byte) error
	Load(name string, size int) ([]byte, error)
}

// FilePersistence stores snapshots as files under Dir.
type FilePersistence struct {
	Dir string
}

// NewFilePersistence returns a FilePersistence rooted at dir. An empty
// dir means the current working directory.
func NewFilePersistence(dir string) *FilePersistence {
	return &FilePersistence{Dir: dir}
}

// Save writes data to name under Dir, via a temp file and rename so a
// crash mid-write never leaves a partial snapshot at the final path.
func (f *FilePersistence) Save(name string, data []byte) error {
	path := filepath.Join(f.Dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return utils.Wrap(err, "write snapshot temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return utils.Wrap(err, "rename snapshot into place")
	}
	return nil
}

// Load reads name under Dir and validates it is exactly size bytes long.
func (f *FilePersistence) Load(name string, size int) ([]byte, error) {
	path := filepath.Join(f.Dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.Wrap(err, "read snapshot file")
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: expected %d got %d", ErrSnapshotSizeMismatch, size, len(data))
	}
	return data, nil
}

// SnapshotName returns the snapshot filename for an epoch, per
// public_settings.h's UNIVERSE_FILE_NAME = "universe.???" pattern: the
// trailing three digits encode epoch mod 1000.
func SnapshotName(epoch int) string {
	return fmt.Sprintf("universe.%03d", epoch%1000)
}

// Snapshot copies the table under the lock, releases it, and writes the
// raw bytes to persistent storage under the current epoch's name.
func (u *Universe) Snapshot() error {
	u.lock.Lock()
	buf := make([]byte, uint64(u.capacity)*SlotSizeBytes)
	for i, s := range u.slots {
		b := s.Bytes()
		copy(buf[i*SlotSizeBytes:(i+1)*SlotSizeBytes], b[:])
	}
	epoch := u.epoch
	u.lock.Unlock()

	if err := u.persist.Save(SnapshotName(epoch), buf); err != nil {
		return fmt.Errorf("snapshot epoch %d: %w", epoch, err)
	}
	logrus.WithFields(logrus.Fields{"epoch": epoch, "bytes": len(buf)}).Info("asset universe snapshot written")
	return nil
}

// LoadSnapshot replaces the table's contents with the snapshot for
// epoch, marks every slot dirty (a full digest rebuild is required), and
// sets Epoch to epoch.
func (u *Universe) LoadSnapshot(epoch int) error {
	data, err := u.persist.Load(SnapshotName(epoch), int(uint64(u.capacity)*SlotSizeBytes))
	if err != nil {
		return fmt.Errorf("load snapshot epoch %d: %w", epoch, err)
	}

	u.lock.Lock()
	defer u.lock.Unlock()

	for i := uint32(0); i < u.capacity; i++ {
		var b [SlotSizeBytes]byte
		copy(b[:], data[uint64(i)*SlotSizeBytes:(uint64(i)+1)*SlotSizeBytes])
		u.slots[i] = SlotFromBytes(b)
	}
	u.dirty.setAll()
	u.epoch = epoch

	logrus.WithFields(logrus.Fields{"epoch": epoch}).Info("asset universe snapshot loaded")
	return nil
}
