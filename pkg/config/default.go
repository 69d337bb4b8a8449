package config

// defaultConfig charts the reception path of a particle: both wires, the
// reception and timer interrupts and the SRAM output buffers.
const defaultConfig = `
(table wire (value 0 0.0) (value 1 1.0))
(table interrupt (value 0 0.0) (value 1 1.0))

(table reception-states
  (char U 0.0) (char S 0.2) (char A 0.6) (char B 0.4) (char x 0.0)
  (char 0 1.2) (char 1 1.4))

(table char-bytes
  (char U 0.0) (char S 0.0) (char A 0.0) (char B 0.0) (char x 0.0)
  (char 0 0.5) (char 1 1.0))

(vector TX_RX_TIMER_TOP 7)
(vector TX_RX_TIMER_CENTER 8)
(vector TX_RX_TIMEOUT_INTERRUPT 20)
(vector NORTH_RECEPTION 19)

(plot (domain WIRE) (name tx-south) (node 1) (title tx-south) (mapping wire))
(plot (domain WIRE) (name rx-north) (node 0) (title rx-north) (mapping wire))

(plot (interrupt NORTH_RECEPTION) (facet post) (title "un-/posting") (mapping interrupt))
(plot (interrupt NORTH_RECEPTION) (facet invoke) (title "call/return") (mapping interrupt))
(plot (interrupt TX_RX_TIMER_TOP) (facet post) (title "un-/posting") (mapping interrupt))
(plot (interrupt TX_RX_TIMER_TOP) (facet invoke) (title "call/return") (mapping interrupt))
(plot (interrupt TX_RX_TIMER_CENTER) (facet post) (title "un-/posting") (mapping interrupt))
(plot (interrupt TX_RX_TIMER_CENTER) (facet invoke) (title "call/return") (mapping interrupt))
(plot (interrupt TX_RX_TIMEOUT_INTERRUPT) (facet invoke) (title "call/return") (mapping interrupt))

(plot (domain SRAM) (name int16-out) (title "SRAM[int16-out]"))
(plot (domain SRAM) (name char-out) (title "SRAM[char-out] - States") (mapping reception-states))
(plot (domain SRAM) (name char-out) (title "SRAM[char-out] - Bytes") (mapping char-bytes) (reselect))
`

// Default returns the built-in tables and preset.
func Default() *Config {
	cfg, err := ParseString(defaultConfig)
	if err != nil {
		panic("config: invalid built-in configuration: " + err.Error())
	}
	return cfg
}
