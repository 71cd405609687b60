package runner

// Mode flag names.
const (
	ScalarPacketlevel                   = "scalarPacketlevel"
	ScalarPacketlevelNeuralNetwork      = "scalarPacketlevelNeuralNetwork"
	DimensionalPacketlevel              = "dimensionalPacketlevel"
	DimensionalPacketlevelNeuralNetwork = "dimensionalPacketlevelNeuralNetwork"
	DimensionalSymbollevel              = "dimensionalSymbollevel"
)

func init() {
	Register(Mode{
		Flag:        ScalarPacketlevel,
		Short:       "s",
		Label:       "Scalar Packetlevel",
		Config:      "ScalarPacketlevel",
		Default:     true,
		Description: "run the scalar packet-level error model",
	})
	Register(Mode{
		Flag:        ScalarPacketlevelNeuralNetwork,
		Short:       "sn",
		Label:       "Scalar Packetlevel Neural Network",
		Config:      "ScalarPacketlevelNeuralNetwork",
		Description: "run the scalar packet-level neural network error model",
	})
	Register(Mode{
		Flag:        DimensionalPacketlevel,
		Short:       "d",
		Label:       "Dimensional Packetlevel",
		Config:      "DimensionalPacketlevel",
		Default:     true,
		Description: "run the dimensional packet-level error model",
	})
	Register(Mode{
		Flag:        DimensionalPacketlevelNeuralNetwork,
		Short:       "dn",
		Label:       "Dimensional Packetlevel Neural Network",
		Config:      "DimensionalPacketlevelNeuralNetwork",
		Description: "run the dimensional packet-level neural network error model",
	})
	Register(Mode{
		Flag:        DimensionalSymbollevel,
		Short:       "b",
		Label:       "Dimensional Symbollevel",
		Config:      "DimensionalSymbollevel",
		Default:     true,
		Description: "run the dimensional symbol-level error model",
	})
}
