package casement

// X11-style keysym values. Both desktop backends report keysyms in this
// space, so the mapping lives here rather than per backend.
const (
	keysymSpace     = 0x0020
	keysymBackspace = 0xff08
	keysymTab       = 0xff09
	keysymReturn    = 0xff0d
	keysymEscape    = 0xff1b
	keysymHome      = 0xff50
	keysymLeft      = 0xff51
	keysymUp        = 0xff52
	keysymRight     = 0xff53
	keysymDown      = 0xff54
	keysymPageUp    = 0xff55
	keysymPageDown  = 0xff56
	keysymEnd       = 0xff57
	keysymInsert    = 0xff63
	keysymNumLock   = 0xff7f
	keysymKPEnter   = 0xff8d
	keysymF1        = 0xffbe
	keysymF12       = 0xffc9
	keysymShiftL    = 0xffe1
	keysymShiftR    = 0xffe2
	keysymControlL  = 0xffe3
	keysymControlR  = 0xffe4
	keysymCapsLock  = 0xffe5
	keysymAltL      = 0xffe9
	keysymAltR      = 0xffea
	keysymSuperL    = 0xffeb
	keysymSuperR    = 0xffec
	keysymDelete    = 0xffff
)

var namedKeysyms = map[uint32]Key{
	keysymBackspace: KeyBackspace,
	keysymTab:       KeyTab,
	keysymReturn:    KeyEnter,
	keysymKPEnter:   KeyEnter,
	keysymEscape:    KeyEscape,
	keysymHome:      KeyHome,
	keysymLeft:      KeyLeft,
	keysymUp:        KeyUp,
	keysymRight:     KeyRight,
	keysymDown:      KeyDown,
	keysymPageUp:    KeyPageUp,
	keysymPageDown:  KeyPageDown,
	keysymEnd:       KeyEnd,
	keysymInsert:    KeyInsert,
	keysymNumLock:   KeyNumLock,
	keysymShiftL:    KeyShiftLeft,
	keysymShiftR:    KeyShiftRight,
	keysymControlL:  KeyCtrlLeft,
	keysymControlR:  KeyCtrlRight,
	keysymCapsLock:  KeyCapsLock,
	keysymAltL:      KeyAltLeft,
	keysymAltR:      KeyAltRight,
	keysymSuperL:    KeySuperLeft,
	keysymSuperR:    KeySuperRight,
	keysymDelete:    KeyDelete,
}

// resolveKeysym maps a keysym (and the rune the backend already resolved
// through the keymap) to the logical key model.
func resolveKeysym(keysym uint32, r rune) (Key, rune) {
	if key, ok := namedKeysyms[keysym]; ok {
		return key, 0
	}
	if keysym == keysymSpace {
		return KeySpace, ' '
	}
	if keysym >= keysymF1 && keysym <= keysymF12 {
		return KeyF1 + Key(keysym-keysymF1), 0
	}
	if r != 0 {
		return KeyCharacter, r
	}
	// Printable Latin-1 keysyms map directly to runes even when the
	// backend did not resolve one.
	if keysym >= 0x20 && keysym <= 0x7e {
		return KeyCharacter, rune(keysym)
	}
	return KeyUnknown, 0
}
