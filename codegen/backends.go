package codegen

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/qcanvas-team/qcanvas-engine/circuit"
)

var qiskitBackend = &backend{
	target: Qiskit,
	instructions: instructionTable{
		circuit.H:       "qc.h(qr[%[1]d])",
		circuit.X:       "qc.x(qr[%[1]d])",
		circuit.Y:       "qc.y(qr[%[1]d])",
		circuit.Z:       "qc.z(qr[%[1]d])",
		circuit.S:       "qc.s(qr[%[1]d])",
		circuit.T:       "qc.t(qr[%[1]d])",
		circuit.RX:      "qc.rx(%[3]s, qr[%[1]d])",
		circuit.RY:      "qc.ry(%[3]s, qr[%[1]d])",
		circuit.RZ:      "qc.rz(%[3]s, qr[%[1]d])",
		circuit.CX:      "qc.cx(qr[%[1]d], qr[%[2]d])",
		circuit.CZ:      "qc.cz(qr[%[1]d], qr[%[2]d])",
		circuit.SWAP:    "qc.swap(qr[%[1]d], qr[%[2]d])",
		circuit.MEASURE: "qc.measure(qr[%[1]d], cr[%[1]d])",
	},
	header: func(c *circuit.Circuit) string {
		return heredoc.Docf(`
			from qiskit import QuantumCircuit, QuantumRegister, ClassicalRegister, transpile
			from qiskit_aer import AerSimulator

			# Create quantum circuit with %[1]d qubits
			qr = QuantumRegister(%[1]d, 'q')
			cr = ClassicalRegister(%[1]d, 'c')
			qc = QuantumCircuit(qr, cr)

			# Add quantum gates
			`, c.QubitCount)
	},
	epilogue: func(c *circuit.Circuit) string {
		return heredoc.Doc(`

			# Simulate the circuit
			qc.save_statevector()
			qc.measure(qr, cr)
			simulator = AerSimulator(method='statevector')
			result = simulator.run(transpile(qc, simulator), shots=1024).result()

			print("Statevector:", result.get_statevector(qc))
			print("Measurement results:", result.get_counts(qc))
			`)
	},
}

var qasmBackend = &backend{
	target: QASM,
	instructions: instructionTable{
		circuit.H:       "h q[%[1]d];",
		circuit.X:       "x q[%[1]d];",
		circuit.Y:       "y q[%[1]d];",
		circuit.Z:       "z q[%[1]d];",
		circuit.S:       "s q[%[1]d];",
		circuit.T:       "t q[%[1]d];",
		circuit.RX:      "rx(%[3]s) q[%[1]d];",
		circuit.RY:      "ry(%[3]s) q[%[1]d];",
		circuit.RZ:      "rz(%[3]s) q[%[1]d];",
		circuit.CX:      "cx q[%[1]d],q[%[2]d];",
		circuit.CZ:      "cz q[%[1]d],q[%[2]d];",
		circuit.SWAP:    "swap q[%[1]d],q[%[2]d];",
		circuit.MEASURE: "measure q[%[1]d] -> c[%[1]d];",
	},
	header: func(c *circuit.Circuit) string {
		return heredoc.Docf(`
			OPENQASM 2.0;
			include "qelib1.inc";

			// Quantum circuit with %[1]d qubits and %[2]d gates
			qreg q[%[1]d];
			creg c[%[1]d];

			`, c.QubitCount, c.Len())
	},
	epilogue: func(c *circuit.Circuit) string {
		return heredoc.Docf(`

			// Execute on a qasm simulator with 1024 shots
			// and report the counts of creg c[%[1]d] read from qreg q[%[1]d]
			`, c.QubitCount)
	},
}

var cirqBackend = &backend{
	target: Cirq,
	instructions: instructionTable{
		circuit.H:       "circuit.append(cirq.H(qubits[%[1]d]))",
		circuit.X:       "circuit.append(cirq.X(qubits[%[1]d]))",
		circuit.Y:       "circuit.append(cirq.Y(qubits[%[1]d]))",
		circuit.Z:       "circuit.append(cirq.Z(qubits[%[1]d]))",
		circuit.S:       "circuit.append(cirq.S(qubits[%[1]d]))",
		circuit.T:       "circuit.append(cirq.T(qubits[%[1]d]))",
		circuit.RX:      "circuit.append(cirq.rx(%[3]s)(qubits[%[1]d]))",
		circuit.RY:      "circuit.append(cirq.ry(%[3]s)(qubits[%[1]d]))",
		circuit.RZ:      "circuit.append(cirq.rz(%[3]s)(qubits[%[1]d]))",
		circuit.CX:      "circuit.append(cirq.CNOT(qubits[%[1]d], qubits[%[2]d]))",
		circuit.CZ:      "circuit.append(cirq.CZ(qubits[%[1]d], qubits[%[2]d]))",
		circuit.SWAP:    "circuit.append(cirq.SWAP(qubits[%[1]d], qubits[%[2]d]))",
		circuit.MEASURE: "circuit.append(cirq.measure(qubits[%[1]d], key='m%[1]d'))",
	},
	header: func(c *circuit.Circuit) string {
		return heredoc.Docf(`
			import cirq

			# Create %[1]d qubits
			qubits = [cirq.LineQubit(i) for i in range(%[1]d)]
			circuit = cirq.Circuit()

			# Add quantum gates
			`, c.QubitCount)
	},
	epilogue: func(c *circuit.Circuit) string {
		return heredoc.Doc(`

			# Simulate the circuit
			circuit.append(cirq.measure(*qubits, key='result'))
			simulator = cirq.Simulator()
			result = simulator.run(circuit, repetitions=1024)

			print("Circuit:")
			print(circuit)
			print("Measurement results:")
			print(result.histogram(key='result'))
			`)
	},
}

var qsharpBackend = &backend{
	target: QSharp,
	indent: "        ",
	instructions: instructionTable{
		circuit.H:       "H(qubits[%[1]d]);",
		circuit.X:       "X(qubits[%[1]d]);",
		circuit.Y:       "Y(qubits[%[1]d]);",
		circuit.Z:       "Z(qubits[%[1]d]);",
		circuit.S:       "S(qubits[%[1]d]);",
		circuit.T:       "T(qubits[%[1]d]);",
		circuit.RX:      "Rx(%[3]s, qubits[%[1]d]);",
		circuit.RY:      "Ry(%[3]s, qubits[%[1]d]);",
		circuit.RZ:      "Rz(%[3]s, qubits[%[1]d]);",
		circuit.CX:      "CNOT(qubits[%[1]d], qubits[%[2]d]);",
		circuit.CZ:      "CZ(qubits[%[1]d], qubits[%[2]d]);",
		circuit.SWAP:    "SWAP(qubits[%[1]d], qubits[%[2]d]);",
		circuit.MEASURE: "set results w/= %[1]d <- M(qubits[%[1]d]);",
	},
	header: func(c *circuit.Circuit) string {
		return heredoc.Docf(`
			namespace QuantumCircuit {
			    open Microsoft.Quantum.Canon;
			    open Microsoft.Quantum.Intrinsic;
			    open Microsoft.Quantum.Measurement;
			    open Microsoft.Quantum.Math;

			    /// # Summary
			    /// Quantum circuit with %[1]d qubits and %[2]d gates
			    operation RunQuantumCircuit() : Result[] {
			        use qubits = Qubit[%[1]d];
			        mutable results = [Zero, size = %[1]d];

			`, c.QubitCount, c.Len())
	},
	epilogue: func(c *circuit.Circuit) string {
		return heredoc.Docf(`

			        // Measure all qubits
			        for i in 0..%[1]d {
			            set results w/= i <- M(qubits[i]);
			        }

			        ResetAll(qubits);
			        return results;
			    }

			    @EntryPoint()
			    operation Main() : Result[] {
			        let results = RunQuantumCircuit();
			        Message($"Measurement results: {results}");
			        return results;
			    }
			}
			`, c.QubitCount-1)
	},
}

var braketBackend = &backend{
	target: Braket,
	instructions: instructionTable{
		circuit.H:       "circuit.h(%[1]d)",
		circuit.X:       "circuit.x(%[1]d)",
		circuit.Y:       "circuit.y(%[1]d)",
		circuit.Z:       "circuit.z(%[1]d)",
		circuit.S:       "circuit.s(%[1]d)",
		circuit.T:       "circuit.t(%[1]d)",
		circuit.RX:      "circuit.rx(%[1]d, %[3]s)",
		circuit.RY:      "circuit.ry(%[1]d, %[3]s)",
		circuit.RZ:      "circuit.rz(%[1]d, %[3]s)",
		circuit.CX:      "circuit.cnot(%[1]d, %[2]d)",
		circuit.CZ:      "circuit.cz(%[1]d, %[2]d)",
		circuit.SWAP:    "circuit.swap(%[1]d, %[2]d)",
		circuit.MEASURE: "circuit.measure(%[1]d)",
	},
	header: func(c *circuit.Circuit) string {
		return heredoc.Docf(`
			from braket.circuits import Circuit
			from braket.devices import LocalSimulator

			# Create quantum circuit with %[1]d qubits
			circuit = Circuit()

			# Add quantum gates
			`, c.QubitCount)
	},
	epilogue: func(c *circuit.Circuit) string {
		return heredoc.Docf(`

			# Keep every qubit in the result, then simulate
			circuit.i(range(%[1]d))
			device = LocalSimulator()
			task = device.run(circuit, shots=1024)
			result = task.result()

			print("Circuit:")
			print(circuit)
			print("Measurement results over qubits [%[2]s]:")
			print(result.measurement_counts)
			`, c.QubitCount, qubitList(c.QubitCount, ", "))
	},
}

var quilBackend = &backend{
	target: Quil,
	instructions: instructionTable{
		circuit.H:       "H %[1]d",
		circuit.X:       "X %[1]d",
		circuit.Y:       "Y %[1]d",
		circuit.Z:       "Z %[1]d",
		circuit.S:       "S %[1]d",
		circuit.T:       "T %[1]d",
		circuit.RX:      "RX(%[3]s) %[1]d",
		circuit.RY:      "RY(%[3]s) %[1]d",
		circuit.RZ:      "RZ(%[3]s) %[1]d",
		circuit.CX:      "CNOT %[1]d %[2]d",
		circuit.CZ:      "CZ %[1]d %[2]d",
		circuit.SWAP:    "SWAP %[1]d %[2]d",
		circuit.MEASURE: "MEASURE %[1]d",
	},
	header: func(c *circuit.Circuit) string {
		return heredoc.Docf(`
			# Quil program with %[1]d qubits and %[2]d gates

			`, c.QubitCount, c.Len())
	},
	epilogue: func(c *circuit.Circuit) string {
		return heredoc.Docf(`

			# Run on a QVM and report the wavefunction of qubits %[1]s
			`, qubitList(c.QubitCount, " "))
	},
}

var pennylaneBackend = &backend{
	target: PennyLane,
	indent: "    ",
	instructions: instructionTable{
		circuit.H:       "qml.Hadamard(wires=%[1]d)",
		circuit.X:       "qml.PauliX(wires=%[1]d)",
		circuit.Y:       "qml.PauliY(wires=%[1]d)",
		circuit.Z:       "qml.PauliZ(wires=%[1]d)",
		circuit.S:       "qml.S(wires=%[1]d)",
		circuit.T:       "qml.T(wires=%[1]d)",
		circuit.RX:      "qml.RX(%[3]s, wires=%[1]d)",
		circuit.RY:      "qml.RY(%[3]s, wires=%[1]d)",
		circuit.RZ:      "qml.RZ(%[3]s, wires=%[1]d)",
		circuit.CX:      "qml.CNOT(wires=[%[1]d, %[2]d])",
		circuit.CZ:      "qml.CZ(wires=[%[1]d, %[2]d])",
		circuit.SWAP:    "qml.SWAP(wires=[%[1]d, %[2]d])",
		circuit.MEASURE: "qml.measure(wires=%[1]d)",
	},
	header: func(c *circuit.Circuit) string {
		return heredoc.Docf(`
			import pennylane as qml
			import numpy as np

			# Create device
			dev = qml.device('default.qubit', wires=%[1]d)

			@qml.qnode(dev)
			def circuit():
			    # Add quantum gates
			`, c.QubitCount)
	},
	epilogue: func(c *circuit.Circuit) string {
		return heredoc.Docf(`
			    return [qml.expval(qml.PauliZ(i)) for i in range(%[1]d)]

			# Execute circuit
			result = circuit()
			print("Expectation values:", result)
			`, c.QubitCount)
	},
}

var xaccBackend = &backend{
	target: XACC,
	indent: "    ",
	instructions: instructionTable{
		circuit.H:       `circuit->addInstruction(provider->createInstruction("H", {%[1]d}));`,
		circuit.X:       `circuit->addInstruction(provider->createInstruction("X", {%[1]d}));`,
		circuit.Y:       `circuit->addInstruction(provider->createInstruction("Y", {%[1]d}));`,
		circuit.Z:       `circuit->addInstruction(provider->createInstruction("Z", {%[1]d}));`,
		circuit.S:       `circuit->addInstruction(provider->createInstruction("S", {%[1]d}));`,
		circuit.T:       `circuit->addInstruction(provider->createInstruction("T", {%[1]d}));`,
		circuit.RX:      `circuit->addInstruction(provider->createInstruction("Rx", {%[1]d}, {%[3]s}));`,
		circuit.RY:      `circuit->addInstruction(provider->createInstruction("Ry", {%[1]d}, {%[3]s}));`,
		circuit.RZ:      `circuit->addInstruction(provider->createInstruction("Rz", {%[1]d}, {%[3]s}));`,
		circuit.CX:      `circuit->addInstruction(provider->createInstruction("CNOT", {%[1]d, %[2]d}));`,
		circuit.CZ:      `circuit->addInstruction(provider->createInstruction("CZ", {%[1]d, %[2]d}));`,
		circuit.SWAP:    `circuit->addInstruction(provider->createInstruction("Swap", {%[1]d, %[2]d}));`,
		circuit.MEASURE: `circuit->addInstruction(provider->createInstruction("Measure", {%[1]d}));`,
	},
	header: func(c *circuit.Circuit) string {
		return heredoc.Docf(`
			#include "xacc.hpp"
			#include <iostream>

			int main(int argc, char **argv) {
			    xacc::Initialize(argc, argv);

			    // Create quantum circuit with %[1]d qubits
			    auto provider = xacc::getIRProvider("quantum");
			    auto circuit = provider->createComposite("quantum_circuit");

			    // Add quantum gates
			`, c.QubitCount)
	},
	epilogue: func(c *circuit.Circuit) string {
		return heredoc.Docf(`

			    // Execute circuit
			    auto accelerator = xacc::getAccelerator("qpp");
			    auto buffer = xacc::qalloc(%[1]d);
			    accelerator->execute(buffer, circuit);

			    std::cout << "Circuit executed successfully" << std::endl;
			    buffer->print();

			    xacc::Finalize();
			    return 0;
			}
			`, c.QubitCount)
	},
}
