package service

// QRCodeService generates share codes for channels
type QRCodeService interface {
	// GenerateChannelQR returns a PNG encoding the public URL of the channel
	GenerateChannelQR(username string) ([]byte, error)

	// ChannelURL returns the URL encoded by GenerateChannelQR
	ChannelURL(username string) string
}
