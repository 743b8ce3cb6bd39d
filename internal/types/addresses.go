package types

// HardwareAddress is the address of an I/O register, mapped into
// 0xFF00-0xFF7F plus the IE register at 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects the joypad input group (bits 4-5) and reports the
	// active-low state of the four selected buttons (bits 0-3).
	P1 HardwareAddress = 0xFF00
	// SB holds the byte shifted in/out during a serial transfer.
	SB HardwareAddress = 0xFF01
	// SC starts a serial transfer when 0x81 is written to it.
	SC HardwareAddress = 0xFF02
	// DIV is the visible high byte of the timer's internal 16-bit
	// counter; any write resets the whole counter to zero.
	DIV HardwareAddress = 0xFF04
	// TIMA increments at the frequency selected by TAC and raises
	// TIMER on overflow.
	TIMA HardwareAddress = 0xFF05
	// TMA is reloaded into TIMA after an overflow.
	TMA HardwareAddress = 0xFF06
	// TAC selects the timer frequency and enables/disables it.
	TAC HardwareAddress = 0xFF07
	// IF holds pending interrupt requests; bits 5-7 always read 1.
	IF HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR13 HardwareAddress = 0xFF13
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1D
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	NR52 HardwareAddress = 0xFF26

	// LCDC controls whether the LCD/PPU is on and what it draws.
	LCDC HardwareAddress = 0xFF40
	// STAT reports the current PPU mode and drives LCD STAT interrupts.
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	// LY is the scanline currently being drawn; writes reset it to 0.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY to optionally raise a STAT interrupt.
	LYC HardwareAddress = 0xFF45
	// DMA triggers a 160-byte copy from (value*0x100) into OAM.
	DMA  HardwareAddress = 0xFF46
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B

	// IE enables/disables individual interrupt sources.
	IE HardwareAddress = 0xFFFF
)
