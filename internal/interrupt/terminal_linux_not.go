//go:build !linux

package interrupt

type termState struct{}

func makeRaw(int) (*termState, error) {
	return nil, ErrNotSupported
}

func restore(int, *termState) error {
	return nil
}

func readByte(int) (byte, bool) {
	return 0, false
}
