package source

// buildLineIndex записывает байтовые позиции всех '\n' в содержимом.
// Содержимое не нормализуется: в scratch-файл уходят ровно те байты,
// что были в оригинале, поэтому CRLF обрезается только при выводе строк.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}
