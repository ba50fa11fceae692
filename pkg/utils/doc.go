// Package utils provides utility packages for common operations.
//
//   - notify: formatted terminal messages with symbols and colors, and a
//     waiting indicator
package utils
