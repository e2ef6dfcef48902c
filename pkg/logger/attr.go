package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// StoredName tags a record with the generated storage name of an asset.
func StoredName(name string) slog.Attr {
	return slog.String("stored_name", name)
}

// ContentType tags a record with a sniffed content type.
func ContentType(ct string) slog.Attr {
	return slog.String("content_type", ct)
}

// ByteSize tags a record with a payload size in bytes.
func ByteSize(n int64) slog.Attr {
	return slog.Int64("byte_size", n)
}
