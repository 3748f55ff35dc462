/*
Package artifact persists rendered decks in an output directory and keeps that
directory bounded.

Files are named presentation_<YYYYMMDD_HHMMSS>.<ext>. A same-second collision gets
a numeric suffix (presentation_20240101_120000_1.pptx), and names are reserved with
O_EXCL so concurrent requests never share a file.

Sweep removes artifacts that are older than the retention window or fall outside
the newest-N window. Files that vanish mid-sweep are not errors, and a failed delete
is logged without aborting the sweep. Sweeps on several replicas can be serialized
with a ports.Locker.
*/
package artifact
