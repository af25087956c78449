package maple

/*
Purpose: write a full flash image to a memory card, restoring the block/
phase write loop from write_vmu() in vmu_flash.py, which the distilled
spec otherwise only describes one chunk at a time.
*/

import "sort"

// flashBlockSize is the size of one addressable flash block.
const flashBlockSize = 512

// flashWriteSize is the size of one WriteFlash chunk; a block is written
// as flashBlockSize/flashWriteSize phases.
const flashWriteSize = 128

// WriteFlashImage writes every block in image to the memory card at
// addr, each as a sequence of 128-byte WriteFlash phases followed by a
// WriteFlashComplete, processing blocks in ascending order.
func (d *DeviceOps) WriteFlashImage(addr Address, image map[byte][flashBlockSize]byte) error {
	blocks := make([]byte, 0, len(image))
	for block := range image {
		blocks = append(blocks, block)
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i] < blocks[j] })

	for _, block := range blocks {
		data := image[block]

		for phase := 0; phase < flashBlockSize/flashWriteSize; phase++ {
			chunk := data[phase*flashWriteSize : (phase+1)*flashWriteSize]
			if err := d.WriteFlash(addr, uint16(block), byte(phase), chunk); err != nil {
				return err
			}
		}

		if err := d.WriteFlashComplete(addr, uint16(block)); err != nil {
			return err
		}
	}

	return nil
}
