package channel

import "fmt"

// SetupInstructions renders the plaintext setup block operators copy into
// other tooling. The field labels are a user-facing contract; do not reword
// them.
func SetupInstructions(d Descriptor) string {
	return fmt.Sprintf(`=== Tactical Channel Setup ===
Channel Name: %s
Channel Index: %d
PSK (base64): %s

1. Open the radio app and go to the channel list.
2. Add a new channel in slot %d.
3. Set the channel name to: %s
4. Paste the PSK (base64) value into the pre-shared key field.
5. Save, then confirm every team radio shows the same channel hash.
`, d.Name, d.ChannelIndex, d.PSKBase64, d.ChannelIndex, d.Name)
}
