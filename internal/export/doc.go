// Package export turns rendered frames into SVG and PNG pictures.
package export
