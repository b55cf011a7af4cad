package model

// DumpOptions represents options for dumping database tables to NSV files.
// The output format is always NSV; only the compression wrapper varies.
type DumpOptions struct {
	// Compression specifies the compression type
	Compression CompressionType
}

// NewDumpOptions creates new DumpOptions with default values (no compression)
func NewDumpOptions() DumpOptions {
	return DumpOptions{
		Compression: CompressionNone,
	}
}

// WithCompression sets the compression type
func (o DumpOptions) WithCompression(compression CompressionType) DumpOptions {
	o.Compression = compression
	return o
}

// FileExtension returns the complete file extension including compression
func (o DumpOptions) FileExtension() string {
	return ExtNSV + o.Compression.Extension()
}
