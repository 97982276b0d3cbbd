//go:build !ebiten

package preview

// Run validates opts and reports that the window is unavailable in headless
// builds.
func Run(opts Options) error {
	if _, err := prepare(opts); err != nil {
		return err
	}
	return ErrUnavailable
}
